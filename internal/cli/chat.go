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
	"sync"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads lines for the chat REPL.
type LineReader interface {
	// Prompt reads a line; initial pre-fills the editable text.
	Prompt(prompt, initial string) (string, error)

	// PasswordPrompt reads a line without echo.
	PasswordPrompt(prompt string) (string, error)
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI that keeps its history in historyFile.
func NewChatCLI(historyFile string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line of input, pre-filled with initial when non-empty.
func (c *ChatCLI) Prompt(prompt, initial string) (string, error) {
	var (
		input string
		err   error
	)
	if initial != "" {
		input, err = c.line.PromptWithSuggestion(prompt, initial, -1)
	} else {
		input, err = c.line.Prompt(prompt)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// PasswordPrompt reads a line without echo. It is not added to history.
func (c *ChatCLI) PasswordPrompt(prompt string) (string, error) {
	return c.line.PasswordPrompt(prompt)
}

// SaveHistory persists command history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// settlePoll is how often the REPL checks whether zap has finished replying.
const settlePoll = 50 * time.Millisecond

// Chat is the line-mode host for a conversation session.
type Chat struct {
	sess *conversation.Session
	in   LineReader
	out  io.Writer

	mu      sync.Mutex
	printed int
	notice  string
	phase   conversation.Phase
}

// NewChat wires a REPL to sess. Messages are written to out as they are
// appended to the log.
func NewChat(sess *conversation.Session, in LineReader, out io.Writer) *Chat {
	c := &Chat{sess: sess, in: in, out: out}
	c.printed = sess.Controller().Log().Len()
	sess.OnChange(c.onChange)
	return c
}

// Run reads lines until /quit, ctrl+c, ctrl+d or ctx is cancelled.
func (c *Chat) Run(ctx context.Context) error {
	c.printWelcome()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		st := c.sess.State()
		c.printAttachments(st.Attachments)

		line, err := c.in.Prompt(PromptStyle.Render("you› "), st.Input)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return err
		}
		c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
			ctrl.SetInput("")
			ctrl.DismissNotice()
			return nil
		})

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			handled, quit, err := c.handleCommand(line)
			if err != nil {
				DisplayError(c.out, err)
			}
			if quit {
				return nil
			}
			if handled {
				c.wait(ctx)
				continue
			}
		}

		c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
			return ctrl.Submit(line)
		})
		if c.sess.State().LinkConfirmOpen {
			if err := c.confirmLink(); err != nil {
				return err
			}
		}
		c.wait(ctx)
	}
}

// wait blocks until the reply and any offers that follow it are printed.
func (c *Chat) wait(ctx context.Context) {
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()
	for c.sess.Busy() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// handleCommand runs REPL commands. Slash text that is not a REPL command,
// such as /discord or a palette prefix, is left for the controller.
func (c *Chat) handleCommand(line string) (handled, quit bool, err error) {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help", "/h", "/?":
		c.printHelp()

	case "/quit", "/q", "/exit":
		return true, true, nil

	case "/hints":
		return true, false, c.pickHint()

	case "/palette", "/p":
		return true, false, c.pickCommand()

	case "/attach":
		var name string
		c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
			name = ctrl.Attach()
			return nil
		})
		fmt.Fprintf(c.out, "%s %s attached\n", DimStyle.Render("📎"), name)

	case "/detach":
		return true, false, c.detach(args)

	case "/download":
		name := latestFile(c.sess.Controller().Log())
		if name == "" {
			fmt.Fprintln(c.out, DimStyle.Render("Nothing to download yet."))
			break
		}
		c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
			return ctrl.DownloadFile(name)
		})

	case "/key":
		if len(args) > 0 && strings.EqualFold(args[0], "clear") {
			c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
				return ctrl.ClearCredential()
			})
			fmt.Fprintln(c.out, SuccessStyle.Render("[OK]")+" Back in demo mode")
			break
		}
		return true, false, c.setKey()

	default:
		return false, false, nil
	}
	return true, false, nil
}

func (c *Chat) pickHint() error {
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		ctrl.ToggleHints()
		return nil
	})
	fmt.Fprintln(c.out, TitleStyle.Render("Try asking"))
	for i, h := range conversation.Hints {
		fmt.Fprintf(c.out, "  %s %s\n", DimStyle.Render(strconv.Itoa(i+1)+"."), h)
	}

	i, err := c.choose(len(conversation.Hints))
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		if i >= 0 {
			ctrl.PickHint(i)
		} else if ctrl.State().HintsOpen {
			ctrl.ToggleHints()
		}
		return nil
	})
	return err
}

func (c *Chat) pickCommand() error {
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		ctrl.TogglePalette()
		return nil
	})
	fmt.Fprintln(c.out, TitleStyle.Render("Commands"))
	for i, s := range conversation.Suggestions {
		fmt.Fprintf(c.out, "  %s %s %-18s %s\n",
			DimStyle.Render(strconv.Itoa(i+1)+"."), s.Icon, s.Label, DimStyle.Render(s.Description))
	}

	i, err := c.choose(len(conversation.Suggestions))
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		if i >= 0 {
			ctrl.PickCommand(i)
		} else if ctrl.State().PaletteOpen {
			ctrl.TogglePalette()
		}
		return nil
	})
	return err
}

// choose reads a 1-based choice and returns it 0-based, or -1 when the
// user cancels with an empty or invalid line.
func (c *Chat) choose(n int) (int, error) {
	line, err := c.in.Prompt(DimStyle.Render(fmt.Sprintf("pick 1-%d› ", n)), "")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return -1, nil
		}
		return -1, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || i < 1 || i > n {
		return -1, nil
	}
	return i - 1, nil
}

func (c *Chat) detach(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: /detach N", ErrMissingArg)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid attachment number %q", args[0])
	}
	st := c.sess.State()
	if n < 1 || n > len(st.Attachments) {
		return fmt.Errorf("no attachment %d", n)
	}
	name := st.Attachments[n-1]
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		ctrl.RemoveAttachment(n - 1)
		return nil
	})
	fmt.Fprintf(c.out, "%s %s removed\n", DimStyle.Render("📎"), name)
	return nil
}

func (c *Chat) setKey() error {
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		ctrl.OpenCredentialModal()
		return nil
	})
	value, err := c.in.PasswordPrompt("Cohere API key (enter to skip): ")
	if err != nil {
		c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
			ctrl.SkipCredential()
			return nil
		})
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		ctrl.SetCredentialDraft(value)
		return ctrl.SaveCredential()
	})
	if c.sess.State().DemoMode() {
		fmt.Fprintln(c.out, DimStyle.Render("Still in demo mode."))
	} else {
		fmt.Fprintln(c.out, SuccessStyle.Render("[OK]")+" AI enabled")
	}
	return nil
}

func (c *Chat) confirmLink() error {
	line, err := c.in.Prompt(WarningStyle.Render("Open the Discord invite in your browser? [y/N] "), "")
	confirmed := err == nil && strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
	c.sess.Do(func(ctrl *conversation.Controller) []conversation.Effect {
		if confirmed {
			return ctrl.ConfirmLink()
		}
		return ctrl.DeclineLink()
	})
	if err != nil && !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// onChange prints messages appended since the last call. It runs under the
// session lock.
func (c *Chat) onChange(st conversation.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := c.sess.Controller().Log().Messages()
	for _, m := range msgs[min(c.printed, len(msgs)):] {
		c.printMessage(m)
	}
	c.printed = len(msgs)

	if st.Phase() == conversation.AwaitingReply && c.phase == conversation.Idle {
		fmt.Fprintln(c.out, DimStyle.Render("zap is thinking..."))
	}
	c.phase = st.Phase()

	if st.Notice != "" && st.Notice != c.notice {
		fmt.Fprintf(c.out, "%s %s\n", WarningStyle.Render("[!]"), st.Notice)
	}
	c.notice = st.Notice
}

func (c *Chat) printMessage(m model.Message) {
	if m.IsUser() {
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", SenderStyle.Render(m.Role.DisplayName()), DimStyle.Render(m.FormatTime()))
	if m.HasFile() {
		fmt.Fprintf(c.out, "📁 %s %s\n", m.File.Name,
			DimStyle.Render(fmt.Sprintf("(%s · %s) /download to save", m.File.Type, m.File.Size)))
	} else {
		fmt.Fprintln(c.out, WrapText(m.Content, 0))
	}
	fmt.Fprintln(c.out)
}

func (c *Chat) printAttachments(names []string) {
	if len(names) == 0 {
		return
	}
	chips := make([]string, len(names))
	for i, n := range names {
		chips[i] = fmt.Sprintf("%d %s", i+1, n)
	}
	fmt.Fprintf(c.out, "%s %s\n", DimStyle.Render("📎"), strings.Join(chips, "  "))
}

func (c *Chat) printWelcome() {
	st := c.sess.State()
	mode := "AI Enabled"
	if st.DemoMode() {
		mode = "Demo Mode"
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, TitleStyle.Render("Final Site")+" "+DimStyle.Render("Chat with Zap, our AI assistant ("+mode+")"))
	fmt.Fprintln(c.out, RenderSeparator(40))
	fmt.Fprintln(c.out, DimStyle.Render("Type a message and press Enter. Commands: /help, /hints, /quit"))
	if st.DemoMode() {
		fmt.Fprintln(c.out, DimStyle.Render("Add a Cohere API key with /key to enable AI replies."))
	}
	fmt.Fprintln(c.out)
}

func (c *Chat) printHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/hints", "Pick a suggested question"},
		{"/palette, /p", "Pick a command prefix"},
		{"/attach", "Attach a placeholder file"},
		{"/detach N", "Remove attachment N"},
		{"/download", "Download the latest offered file"},
		{"/key [clear]", "Set or clear the API key"},
		{"/discord", "Join the community Discord"},
		{"/quit, /q", "Exit chat"},
	}

	fmt.Fprintln(c.out, TitleStyle.Render("Available Commands"))
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %-16s %s\n", cmd.cmd, DimStyle.Render(cmd.desc))
	}
	fmt.Fprintln(c.out)
}

// latestFile returns the name of the most recently offered file.
func latestFile(log *model.Log) string {
	files := log.Files()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1].File.Name
}
