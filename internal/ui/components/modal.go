// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/tabchat/internal/model"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

// =============================================================================
// MODAL COMPONENT
// =============================================================================

// ModalKind identifies which dialog a Modal shows.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalRename
	ModalDelete
	ModalShare
)

func (k ModalKind) String() string {
	switch k {
	case ModalRename:
		return "rename"
	case ModalDelete:
		return "delete"
	case ModalShare:
		return "share"
	default:
		return "none"
	}
}

// Modal is a centered dialog acting on one chat: rename it, confirm its
// deletion or show its share link.
type Modal struct {
	Kind    ModalKind
	Session model.ChatSession
	Link    string

	// Err is shown in the error color, Notice in the success color.
	Err    string
	Notice string

	Width int

	input textinput.Model
	theme *styles.Theme
}

// NewRenameModal opens a rename dialog prefilled with the current label.
func NewRenameModal(theme *styles.Theme, sess model.ChatSession) Modal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.SetValue(sess.Label)
	ti.CursorEnd()
	ti.Focus()

	return Modal{Kind: ModalRename, Session: sess, input: ti, theme: theme, Width: 44}
}

// NewDeleteModal opens a delete confirmation for sess.
func NewDeleteModal(theme *styles.Theme, sess model.ChatSession) Modal {
	return Modal{Kind: ModalDelete, Session: sess, theme: theme, Width: 44}
}

// NewShareModal shows link for sess.
func NewShareModal(theme *styles.Theme, sess model.ChatSession, link string) Modal {
	return Modal{Kind: ModalShare, Session: sess, Link: link, theme: theme, Width: 44}
}

// Open reports whether the modal is showing.
func (m Modal) Open() bool {
	return m.Kind != ModalNone
}

// Value returns the text typed into a rename dialog.
func (m Modal) Value() string {
	return m.input.Value()
}

// Update forwards msg to the rename input. Other kinds ignore it.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if m.Kind != ModalRename {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.Err = ""
	return m, cmd
}

// View renders the dialog box. Callers place it on screen.
func (m Modal) View() string {
	if !m.Open() {
		return ""
	}
	t := m.theme
	inner := m.Width - t.ModalBox.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	var title, body, hint string
	switch m.Kind {
	case ModalRename:
		title = "Rename chat"
		m.input.Width = inner - len(m.input.Prompt) - 1
		body = m.input.View()
		hint = "enter save  esc cancel"
	case ModalDelete:
		title = "Delete chat"
		body = t.ModalDanger.Render(fmt.Sprintf("Delete %q and its messages?", m.Session.Label))
		hint = "enter/y delete  esc/n cancel"
	case ModalShare:
		title = "Share chat"
		body = styles.RenderLink(m.Link)
		hint = "c copy link  esc close"
	}

	lines := []string{
		t.ModalTitle.Render(title),
		lipgloss.NewStyle().Width(inner).Render(t.ModalBody.Render(body)),
	}
	if m.Err != "" {
		lines = append(lines, styles.RenderError(m.Err))
	}
	if m.Notice != "" {
		lines = append(lines, styles.RenderSuccess(m.Notice))
	}
	lines = append(lines, t.ModalHint.Render(hint))

	return t.ModalBox.Width(m.Width).Render(strings.Join(lines, "\n"))
}
