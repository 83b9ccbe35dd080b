// zap - the Final Site chat assistant in your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zap-tui/internal/cli"
	"github.com/jeranaias/zap-tui/internal/cohere"
	"github.com/jeranaias/zap-tui/internal/config"
	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/links"
	"github.com/jeranaias/zap-tui/internal/responder"
	"github.com/jeranaias/zap-tui/internal/storage"
	"github.com/jeranaias/zap-tui/internal/typing"
	"github.com/jeranaias/zap-tui/internal/ui/chat"
	"github.com/jeranaias/zap-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// configReloadDebounce coalesces editor write bursts into one reload.
const configReloadDebounce = 250 * time.Millisecond

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse()
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Run 'zap help' for usage.")
		os.Exit(cli.ExitCode(err))
	}
	cli.ConfigureColors(args.NoColor)

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(args)
	defer a.close()

	switch cmd {
	case cli.CmdConfig:
		err = cli.HandleConfig(args, a.configPath, os.Stdout)
	case cli.CmdKey:
		err = a.runKey(ctx, args)
	case cli.CmdChat:
		err = a.runChat(ctx)
	default:
		err = a.runTUI(ctx)
	}

	if err != nil {
		a.logger.Error("command failed", "command", cmd.String(), "error", err)
		cli.DisplayError(os.Stderr, err)
		a.close()
		os.Exit(cli.ExitCode(err))
	}
}

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app holds what every command shares: the loaded config and the logger.
type app struct {
	args       cli.Args
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	logFile    *os.File
}

func newApp(args cli.Args) *app {
	a := &app{args: args, configPath: args.ConfigPath}

	if a.configPath == "" {
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			path = filepath.Join(os.TempDir(), "zap", "config.toml")
		}
		a.configPath = path
	}

	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if args.Fast {
		cfg.Typing.Speed = 0
	}
	if args.Verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	a.logger, a.logFile = openLogger(filepath.Dir(a.configPath), cfg.LogLevel)
	a.logger.Info("zap starting", "version", Version, "config", a.configPath)
	return a
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// openLogger writes text logs to dir/zap.log. Logging is discarded when the
// file cannot be opened; the TUI owns stdout and stderr.
func openLogger(dir, level string) (*slog.Logger, *os.File) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "zap.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f
}

// openStore opens the configured credential store.
func (a *app) openStore() (storage.Store, error) {
	dir, err := a.cfg.StorageDir()
	if err != nil {
		return nil, err
	}
	return storage.Open(storage.Options{
		Backend: a.cfg.Storage.Backend,
		Dir:     dir,
		Encrypt: a.cfg.Storage.Encrypt,
	})
}

// session bundles a controller with the collaborators its host executes
// effects with.
type session struct {
	ctrl  *conversation.Controller
	deps  conversation.Deps
	store storage.Store
}

func (s *session) close() {
	if s.store != nil {
		s.store.Close()
	}
}

// newSession loads the credential and reply pack and builds the controller.
// A broken store degrades to memory with a notice; a broken reply pack falls
// back to the built-in one.
func (a *app) newSession(ctx context.Context) *session {
	var notice string
	store, err := a.openStore()
	if err != nil {
		a.logger.Warn("credential storage unavailable", "error", err)
		store = storage.NewMemory()
		notice = conversation.NoticeStorageUnavailable
	}
	creds := storage.NewCredentials(store)

	credential, err := creds.Load(ctx)
	if err != nil {
		a.logger.Warn("failed to load credential", "error", err)
		notice = conversation.NoticeStorageUnavailable
	}

	pack := responder.DefaultPack()
	if a.cfg.ResponsesFile != "" {
		p, err := responder.LoadPack(a.cfg.ResponsesFile)
		if err != nil {
			a.logger.Warn("failed to load reply pack, using built-in replies", "path", a.cfg.ResponsesFile, "error", err)
		} else {
			pack = p
		}
	}

	opts := conversation.DefaultOptions()
	opts.Selector = responder.New(pack, nil)
	opts.SerializeReplies = a.cfg.SerializeReplies
	opts.TypingSpeed = a.cfg.Typing.Speed
	opts.UseCompleter = a.cfg.Cohere.Enabled
	opts.DiscordURL = a.cfg.Links.DiscordURL
	opts.Credential = credential
	opts.Logger = a.logger

	ctrl := conversation.New(nil, opts)
	if notice != "" {
		ctrl.Handle(conversation.Notice{Text: notice})
	}

	deps := conversation.Deps{
		Store:      creds,
		Downloader: conversation.MockDownloader{},
		Opener:     links.NewOpener(a.logger),
		Logger:     a.logger,
	}
	if a.cfg.Cohere.Enabled {
		deps.Completer = cohere.NewClient().
			WithBaseURL(a.cfg.Cohere.BaseURL).
			WithModel(a.cfg.Cohere.Model).
			WithTimeout(time.Duration(a.cfg.Cohere.TimeoutSeconds) * time.Second).
			WithRateLimit(a.cfg.Cohere.RequestsPerMinute)
	}

	return &session{ctrl: ctrl, deps: deps, store: store}
}

// =============================================================================
// COMMANDS
// =============================================================================

// runTUI starts the full-screen widget.
func (a *app) runTUI(ctx context.Context) error {
	s := a.newSession(ctx)
	defer s.close()

	opts := chat.Options{
		Theme:          styles.NewTheme(a.cfg.UI.Theme, !cli.ColorsEnabled()),
		Store:          s.deps.Store,
		Downloader:     s.deps.Downloader,
		Completer:      s.deps.Completer,
		Opener:         s.deps.Opener,
		Logger:         a.logger,
		ShowTimestamps: a.cfg.UI.ShowTimestamps,
		Markdown:       a.cfg.UI.Glamour,
		DashboardURL:   a.cfg.Links.DashboardURL,
		NoColor:        !cli.ColorsEnabled(),
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if w, err := config.NewWatcher(a.configPath, configReloadDebounce, a.logger); err != nil {
		a.logger.Warn("config hot reload disabled", "error", err)
	} else {
		go w.Run(watchCtx)
		opts.ConfigUpdates = w.Updates()
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if a.cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(chat.New(s.ctrl, opts), programOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running zap: %w", err)
	}
	a.logger.Info("zap exiting")
	return nil
}

// runChat starts the line-mode REPL.
func (a *app) runChat(ctx context.Context) error {
	s := a.newSession(ctx)
	defer s.close()

	sess := conversation.NewSession(s.ctrl, typing.RealScheduler{}, s.deps)
	defer sess.Close()

	in := cli.NewChatCLI(filepath.Join(filepath.Dir(a.configPath), "chat_history"))
	defer in.Close()

	return cli.NewChat(sess, in, os.Stdout).Run(ctx)
}

// runKey manages the stored credential.
func (a *app) runKey(ctx context.Context, args cli.Args) error {
	store, err := a.openStore()
	if err != nil {
		return &cli.CommandError{Command: "key", Action: strings.TrimSpace(args.Subcommand + " open"), Err: err}
	}
	defer store.Close()
	return cli.HandleKey(ctx, args, storage.NewCredentials(store), os.Stdout)
}
