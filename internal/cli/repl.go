// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/morganforge/tabchat/internal/app"
	"github.com/morganforge/tabchat/internal/config"
	"github.com/morganforge/tabchat/internal/model"
	"github.com/morganforge/tabchat/internal/session"
	"github.com/morganforge/tabchat/internal/ui/components"
	"github.com/morganforge/tabchat/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

const replHelp = `Commands:
  /new               start a new chat and switch to it
  /switch N          switch to chat N
  /rename N LABEL    rename chat N
  /delete N          delete chat N
  /list              list chats
  /share [N]         print a share link for chat N (default: active)
  /history           show the active chat's messages
  /help              show this help
  /quit              exit
Anything else is sent to the active chat.`

// listPreviewLen caps the message preview shown by /list.
const listPreviewLen = 40

func newREPLCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat line by line with slash commands for managing chats",
		Example: `  tabchat repl
  > hello
  > /new
  > /rename 2 Planning`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := st.config()
			if err != nil {
				return err
			}
			ctrl := newController(cfg, st.cliLogger(cfg))

			out := cmd.OutOrStdout()
			r := &repl{
				ctrl:      ctrl,
				out:       out,
				highlight: isTerminal(out),
				style:     styles.NewTheme(cfg.UI.Theme).MarkdownStyle,
			}
			return r.run(cmd.Context())
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

// repl is a line-oriented front end over the chat controller.
type repl struct {
	ctrl      *app.Controller
	out       io.Writer
	highlight bool
	style     string
}

// run reads lines with liner until /quit, Ctrl+D or Ctrl+C.
func (r *repl) run(ctx context.Context) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := historyPath()
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if dir := filepath.Dir(historyFile); os.MkdirAll(dir, 0700) == nil {
			if f, err := os.OpenFile(historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
		}
		line.Close()
	}()

	fmt.Fprintln(r.out, speakerStyle.Render(components.SidebarTitle)+" "+mutedStyle.Render("(/help for commands)"))
	r.printMessages(r.ctrl.ActiveMessages())

	for {
		input, err := line.Prompt(r.prompt())
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if r.handle(ctx, input) {
			return nil
		}
	}
}

func (r *repl) prompt() string {
	// liner measures the prompt itself, so it must stay free of escapes.
	return fmt.Sprintf("[%s] > ", r.ctrl.ActiveSession().Label)
}

// handle processes one input line and reports whether the REPL should exit.
func (r *repl) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(trimmed, "/") {
		r.send(ctx, input)
		return false
	}

	fields := strings.Fields(trimmed)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Fprintln(r.out, replHelp)

	case "/new":
		s := r.ctrl.CreateSession()
		r.ok(fmt.Sprintf("Created %s", s.Label))
		r.printMessages(r.ctrl.ActiveMessages())

	case "/switch":
		id, ok := r.chatArg(args, 0)
		if !ok {
			return false
		}
		if err := r.ctrl.SelectChat(id); err != nil {
			r.fail(err)
			return false
		}
		r.printMessages(r.ctrl.ActiveMessages())

	case "/rename":
		id, ok := r.chatArg(args, 0)
		if !ok {
			return false
		}
		label := ""
		if len(args) > 1 {
			// Keep the label's inner spacing as typed.
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, name))
			label = strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		}
		if err := r.ctrl.RenameSession(id, label); err != nil {
			r.fail(err)
			return false
		}
		s, _ := r.ctrl.Session(id)
		r.ok(fmt.Sprintf("Renamed chat %d to %q", id, s.Label))

	case "/delete":
		id, ok := r.chatArg(args, 0)
		if !ok {
			return false
		}
		if err := r.ctrl.DeleteSession(id); err != nil {
			if errors.Is(err, session.ErrLastSession) {
				r.fail(errors.New("cannot delete the only chat"))
			} else {
				r.fail(err)
			}
			return false
		}
		r.ok(fmt.Sprintf("Deleted chat %d", id))

	case "/list":
		r.list()

	case "/share":
		id := r.ctrl.ActiveChatID()
		if len(args) > 0 {
			var ok bool
			if id, ok = r.chatArg(args, 0); !ok {
				return false
			}
		}
		link, err := r.ctrl.ShareLink(id)
		if err != nil {
			r.fail(err)
			return false
		}
		fmt.Fprintln(r.out, link)

	case "/history":
		r.printMessages(r.ctrl.ActiveMessages())

	default:
		r.fail(fmt.Errorf("unknown command %s (try /help)", name))
	}
	return false
}

func (r *repl) send(ctx context.Context, text string) {
	fmt.Fprintln(r.out, styles.RenderInfo("Sending..."))
	reply, err := r.ctrl.SendMessage(ctx, text)
	if err != nil {
		r.fail(err)
		return
	}
	r.printMessage(reply)
}

func (r *repl) list() {
	active := r.ctrl.ActiveChatID()
	for _, s := range r.ctrl.Sessions() {
		marker := " "
		if s.ID == active {
			marker = "*"
		}
		count := r.ctrl.MessageCount(s.ID)
		fmt.Fprintf(r.out, "%s %3d  %s  %s  %s\n", marker, s.ID, s.Label,
			mutedStyle.Render(fmt.Sprintf("(%d messages)", count)),
			mutedStyle.Render(r.ctrl.Preview(s.ID, listPreviewLen)))
	}
}

func (r *repl) printMessages(msgs []model.Message) {
	for _, msg := range msgs {
		r.printMessage(msg)
	}
}

func (r *repl) printMessage(msg model.Message) {
	speaker := speakerStyle.Render(msg.Sender.DisplayName() + ":")
	switch {
	case msg.IsError:
		fmt.Fprintln(r.out, speaker, styles.RenderError(msg.Text))
	case msg.IsBot() && r.highlight:
		fmt.Fprintln(r.out, speaker, components.HighlightCodeBlocks(msg.Text, r.style))
	default:
		fmt.Fprintln(r.out, speaker, msg.Text)
	}
}

// chatArg parses args[i] as a chat id, reporting usage errors itself.
func (r *repl) chatArg(args []string, i int) (int, bool) {
	if len(args) <= i {
		r.fail(errors.New("missing chat number"))
		return 0, false
	}
	id, err := strconv.Atoi(args[i])
	if err != nil {
		r.fail(fmt.Errorf("invalid chat number %q", args[i]))
		return 0, false
	}
	return id, true
}

func (r *repl) ok(msg string) {
	fmt.Fprintln(r.out, styles.RenderSuccess(msg))
}

func (r *repl) fail(err error) {
	fmt.Fprintln(r.out, styles.RenderError(err.Error()))
}

// historyPath returns the REPL history file, next to the config file.
func historyPath() string {
	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "repl_history")
}
