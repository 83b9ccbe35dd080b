// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package typing computes simulated typing delays and runs delayed callbacks.
package typing

import (
	"sort"
	"sync"
	"time"
	"unicode/utf8"
)

// =============================================================================
// DELAY FORMULA
// =============================================================================

const (
	// BaseDelay is the minimum time the typing indicator is shown.
	BaseDelay = 1000 * time.Millisecond

	// PerCharDelay is added for every character of the reply.
	PerCharDelay = 30 * time.Millisecond

	// MaxLengthDelay caps the length-dependent part of the delay.
	MaxLengthDelay = 3000 * time.Millisecond

	// MaxDelay is the longest possible typing delay.
	MaxDelay = BaseDelay + MaxLengthDelay
)

// Delay returns how long the assistant "types" before text appears:
// 1s plus 30ms per character, with the length part capped at 3s.
func Delay(text string) time.Duration {
	lengthDelay := time.Duration(utf8.RuneCountInString(text)) * PerCharDelay
	if lengthDelay > MaxLengthDelay {
		lengthDelay = MaxLengthDelay
	}
	return BaseDelay + lengthDelay
}

// Scale multiplies d by speed. A speed of zero or less disables the delay.
func Scale(d time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(float64(d) * speed)
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Stopper
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (RealScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, fn)
}

// =============================================================================
// MANUAL SCHEDULER
// =============================================================================

// ManualScheduler is a Scheduler driven by Advance instead of the wall clock.
// Callbacks due at the same instant run in scheduling order.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	s       *ManualScheduler
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues fn to run when the clock passes d from now.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{at: m.now + d, seq: m.seq, fn: fn, s: m}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that becomes
// due, including ones scheduled by callbacks during the advance.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.popDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		m.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of callbacks not yet run or stopped.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Now returns the elapsed virtual time.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// popDue removes and returns the earliest live task due at or before target.
func (m *ManualScheduler) popDue(target time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at != m.tasks[j].at {
			return m.tasks[i].at < m.tasks[j].at
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if m.tasks[0].at > target {
		return nil
	}
	t := m.tasks[0]
	t.stopped = true
	m.tasks = m.tasks[1:]
	return t
}
