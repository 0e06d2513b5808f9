// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/morganforge/tabchat/internal/app"
	"github.com/morganforge/tabchat/internal/session"
	"github.com/morganforge/tabchat/internal/ui/components"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

// Layout defaults.
const (
	DefaultSidebarWidth = 26
	DefaultNarrowWidth  = 80
)

// Fixed rows around the viewport: title (2), input (2), status bar (1).
const (
	titleHeight     = 2
	inputHeight     = 2
	statusBarHeight = 1
)

// =============================================================================
// MODEL
// =============================================================================

// Config configures the chat screen.
type Config struct {
	Controller *app.Controller
	Theme      *styles.Theme

	// SidebarWidth is the docked sidebar width in cells.
	SidebarWidth int
	// NarrowWidth is the terminal width below which the sidebar becomes
	// an overlay.
	NarrowWidth int

	// Context bounds in-flight exchanges. Defaults to context.Background.
	Context context.Context
	Logger  *zap.Logger
}

// sidebarState is shared between Model copies so the controller's select
// callback can close the overlay.
type sidebarState struct {
	open   bool
	narrow bool
}

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	ctrl   *app.Controller
	theme  *styles.Theme
	keys   KeyMap
	ctx    context.Context
	logger *zap.Logger

	sidebar  *components.Sidebar
	messages *components.MessageList
	layout   *sidebarState
	modal    components.Modal

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width        int
	height       int
	sidebarWidth int
	narrowWidth  int

	// status is a one-line notice shown in the status bar until the next key.
	status string

	copyText func(string) error
}

// New creates the chat screen for cfg.Controller.
func New(cfg Config) Model {
	theme := cfg.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sidebarWidth := cfg.SidebarWidth
	if sidebarWidth <= 0 {
		sidebarWidth = DefaultSidebarWidth
	}
	narrowWidth := cfg.NarrowWidth
	if narrowWidth < 0 {
		narrowWidth = DefaultNarrowWidth
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	m := Model{
		ctrl:         cfg.Controller,
		theme:        theme,
		keys:         DefaultKeyMap(),
		ctx:          ctx,
		logger:       logger.Named("tui"),
		sidebar:      components.NewSidebar(theme),
		messages:     components.NewMessageList(theme),
		layout:       &sidebarState{open: true},
		viewport:     viewport.New(80, 20),
		input:        ti,
		spinner:      sp,
		sidebarWidth: sidebarWidth,
		narrowWidth:  narrowWidth,
		copyText:     clipboard.WriteAll,
	}
	m.sidebar.Sending = m.ctrl.IsSending

	layout := m.layout
	m.ctrl.SetSelectCallback(func(int) {
		if layout.narrow {
			layout.open = false
		}
	})

	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		m.logger.Debug("reply received",
			zap.Int("chat_id", msg.ChatID),
			zap.Bool("error", msg.Reply.IsError))
		m.refresh()
		return m, nil

	case CopiedMsg:
		if m.modal.Kind == components.ModalShare {
			if msg.Err != nil {
				m.modal.Err = "Could not copy: " + msg.Err.Error()
			} else {
				m.modal.Notice = "Link copied to clipboard"
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anySending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	narrow := m.width < m.narrowWidth
	if narrow != m.layout.narrow {
		// Growing wide docks the sidebar, shrinking hides the overlay.
		m.layout.narrow = narrow
		m.layout.open = !narrow
	}

	m.refresh()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	m.status = ""

	if m.modal.Open() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NewChat):
		s := m.ctrl.CreateSession()
		m.logger.Debug("chat created", zap.Int("chat_id", s.ID))

	case key.Matches(msg, m.keys.PrevChat):
		m.ctrl.CycleChat(-1)

	case key.Matches(msg, m.keys.NextChat):
		m.ctrl.CycleChat(1)

	case key.Matches(msg, m.keys.JumpChat):
		n := int(msg.Runes[0] - '0')
		sessions := m.ctrl.Sessions()
		if n <= len(sessions) {
			_ = m.ctrl.SelectChat(sessions[n-1].ID)
		}

	case key.Matches(msg, m.keys.Rename):
		m.modal = components.NewRenameModal(m.theme, m.ctrl.ActiveSession())

	case key.Matches(msg, m.keys.Delete):
		m.modal = components.NewDeleteModal(m.theme, m.ctrl.ActiveSession())

	case key.Matches(msg, m.keys.Share):
		sess := m.ctrl.ActiveSession()
		link, err := m.ctrl.ShareLink(sess.ID)
		if err != nil {
			m.status = styles.RenderError(err.Error())
			break
		}
		m.modal = components.NewShareModal(m.theme, sess, link)

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.layout.open = !m.layout.open

	case key.Matches(msg, m.keys.Close):
		if m.layout.narrow {
			m.layout.open = false
		}

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	default:
		if m.ctrl.IsSendingActive() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close) {
		m.modal = components.Modal{}
		return m, nil
	}

	switch m.modal.Kind {
	case components.ModalRename:
		if key.Matches(msg, m.keys.Submit) {
			err := m.ctrl.RenameSession(m.modal.Session.ID, m.modal.Value())
			if errors.Is(err, session.ErrEmptyLabel) {
				m.modal.Err = "Name cannot be empty"
				return m, nil
			}
			if err != nil {
				m.status = styles.RenderError(err.Error())
			}
			m.modal = components.Modal{}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd

	case components.ModalDelete:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if err := m.ctrl.DeleteSession(m.modal.Session.ID); err != nil {
				if errors.Is(err, session.ErrLastSession) {
					m.status = styles.RenderError("Cannot delete the only chat")
				} else {
					m.status = styles.RenderError(err.Error())
				}
			} else {
				m.logger.Debug("chat deleted", zap.Int("chat_id", m.modal.Session.ID))
			}
			m.modal = components.Modal{}
			m.refresh()
		case msg.String() == "n":
			m.modal = components.Modal{}
		}
		return m, nil

	case components.ModalShare:
		if key.Matches(msg, m.keys.Copy) {
			return m, copyCmd(m.copyText, m.modal.Link)
		}
	}
	return m, nil
}

// submit sends the input line from the active chat.
func (m Model) submit() (tea.Model, tea.Cmd) {
	out, err := m.ctrl.BeginSend(m.input.Value())
	switch {
	case errors.Is(err, app.ErrEmptyMessage), errors.Is(err, app.ErrSendInFlight):
		return m, nil
	case err != nil:
		m.status = styles.RenderError(err.Error())
		return m, nil
	}

	m.logger.Debug("message sent", zap.Int("chat_id", out.ChatID))
	m.input.Reset()
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, deliverCmd(m.ctx, m.ctrl, out))
}

// =============================================================================
// HELPERS
// =============================================================================

// anySending reports whether any chat waits for a reply.
func (m Model) anySending() bool {
	for _, s := range m.ctrl.Sessions() {
		if m.ctrl.IsSending(s.ID) {
			return true
		}
	}
	return false
}

// chatPaneWidth is the width left for the chat pane.
func (m Model) chatPaneWidth() int {
	w := m.width
	if m.layout.open && !m.layout.narrow {
		w -= m.sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// refresh syncs the sidebar, viewport and input with the controller.
func (m *Model) refresh() {
	m.sidebar.SetSessions(m.ctrl.Sessions(), m.ctrl.ActiveChatID())

	sidebarWidth := m.sidebarWidth
	if m.layout.narrow && m.width > 0 && m.width < sidebarWidth {
		sidebarWidth = m.width
	}
	m.sidebar.SetSize(sidebarWidth, m.height)

	paneWidth := m.chatPaneWidth()
	vpHeight := m.height - titleHeight - inputHeight - statusBarHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = paneWidth
	m.viewport.Height = vpHeight

	m.input.Width = paneWidth - len(m.input.Prompt) - 1
	if m.input.Width < 10 {
		m.input.Width = 10
	}

	m.messages.SetWidth(paneWidth)
	m.viewport.SetContent(m.messages.Render(m.ctrl.ActiveMessages()))
	m.viewport.GotoBottom()
}

// SidebarOpen reports whether the sidebar is visible.
func (m Model) SidebarOpen() bool {
	return m.layout.open
}

// Narrow reports whether the sidebar is in overlay mode.
func (m Model) Narrow() bool {
	return m.layout.narrow
}

// Modal returns the open dialog, if any.
func (m Model) Modal() components.Modal {
	return m.modal
}

// Status returns the status bar notice.
func (m Model) Status() string {
	return m.status
}
