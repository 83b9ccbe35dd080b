// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jeranaias/zap-tui/internal/typing"
)

// Notices shown when a collaborator fails.
const (
	NoticeStorageUnavailable = "Credential storage unavailable; your key will only be kept for this session"
	NoticeDownloadFailed     = "Download failed"
)

// CompletionTimeout bounds a single Completer call.
const CompletionTimeout = 30 * time.Second

// Deps are the collaborators a Session executes effects with. Nil fields
// fall back to placeholders.
type Deps struct {
	Store      CredentialStore
	Downloader Downloader
	Completer  Completer
	Opener     LinkOpener
	Logger     *slog.Logger
}

// Session runs a Controller on a typing.Scheduler. Every controller call is
// serialized behind one mutex, so timer callbacks from other goroutines are
// safe.
type Session struct {
	mu       sync.Mutex
	ctrl     *Controller
	sched    typing.Scheduler
	deps     Deps
	timers   []typing.Stopper
	ctx      context.Context
	cancel   context.CancelFunc
	onChange func(State)
	inflight int
	wg       sync.WaitGroup
}

// NewSession wraps ctrl. A nil scheduler uses the wall clock.
func NewSession(ctrl *Controller, sched typing.Scheduler, deps Deps) *Session {
	if sched == nil {
		sched = typing.RealScheduler{}
	}
	if deps.Downloader == nil {
		deps.Downloader = MockDownloader{}
	}
	if deps.Completer == nil {
		deps.Completer = NoopCompleter{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ctrl:   ctrl,
		sched:  sched,
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnChange registers fn to run after every state change, under the session
// lock. fn must not call back into the session.
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Do runs fn against the controller and executes the returned effects.
func (s *Session) Do(fn func(c *Controller) []Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run(fn(s.ctrl))
}

// State returns a snapshot of the controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Busy reports whether scheduled events or collaborator calls are still
// outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Controller returns the wrapped controller. Callers must go through Do to
// mutate it.
func (s *Session) Controller() *Controller {
	return s.ctrl
}

// Close stops outstanding timers, cancels collaborator calls and closes the
// controller. Callbacks already running finish but append nothing.
func (s *Session) Close() {
	s.mu.Lock()
	s.ctrl.Close()
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	s.inflight = 0
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}

// dispatch delivers an event from a timer or collaborator goroutine.
func (s *Session) dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight > 0 {
		s.inflight--
	}
	s.run(s.ctrl.Handle(ev))
}

// run executes effects. Caller holds s.mu.
func (s *Session) run(effects []Effect) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case Schedule:
			ev := eff.Event
			s.inflight++
			s.timers = append(s.timers, s.sched.AfterFunc(eff.After, func() {
				s.dispatch(ev)
			}))

		case Complete:
			s.async(func(ctx context.Context) Event {
				ctx, cancel := context.WithTimeout(ctx, CompletionTimeout)
				defer cancel()
				text, err := s.deps.Completer.CompleteChat(ctx, eff.Prompt, eff.Credential)
				return CompletionResult{Text: text, Err: err, Fallback: eff.Fallback, Offer: eff.Offer}
			})

		case Download:
			notice, err := s.deps.Downloader.Download(s.ctx, eff.Name)
			if err != nil {
				s.deps.Logger.Warn("download failed", "file", eff.Name, "error", err)
				notice = NoticeDownloadFailed
			}
			s.ctrl.Handle(Notice{Text: notice})

		case SaveCredential:
			if s.deps.Store == nil {
				s.ctrl.Handle(Notice{Text: NoticeStorageUnavailable})
				continue
			}
			if err := s.deps.Store.SaveCredential(s.ctx, eff.Value); err != nil {
				s.deps.Logger.Warn("credential save failed", "error", err)
				s.ctrl.Handle(Notice{Text: NoticeStorageUnavailable})
			}

		case OpenLink:
			if s.deps.Opener == nil {
				continue
			}
			notice, err := s.deps.Opener.Open(eff.URL)
			if err != nil {
				s.deps.Logger.Warn("open link failed", "url", eff.URL, "error", err)
			}
			if notice != "" {
				s.ctrl.Handle(Notice{Text: notice})
			}
		}
	}
	s.pruneTimers()
	if s.onChange != nil {
		s.onChange(s.ctrl.State())
	}
}

// async runs fn on a goroutine and dispatches its event.
func (s *Session) async(fn func(ctx context.Context) Event) {
	s.inflight++
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ev := fn(s.ctx)
		s.dispatch(ev)
	}()
}

// pruneTimers keeps the timer list from growing without bound in long
// sessions. Caller holds s.mu.
func (s *Session) pruneTimers() {
	const maxTimers = 64
	if len(s.timers) > maxTimers {
		s.timers = s.timers[len(s.timers)-maxTimers:]
	}
}
