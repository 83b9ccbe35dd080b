// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package typing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelay(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Duration
	}{
		{"empty", "", 1000 * time.Millisecond},
		{"ten chars", "0123456789", 1300 * time.Millisecond},
		{"just under cap", strings.Repeat("a", 99), 3970 * time.Millisecond},
		{"at cap", strings.Repeat("a", 100), 4000 * time.Millisecond},
		{"over cap", strings.Repeat("a", 200), 4000 * time.Millisecond},
		{"multibyte counts characters", "📁📁", 1060 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Delay(tc.text))
		})
	}
}

func TestDelay_MonotonicAndBounded(t *testing.T) {
	prev := time.Duration(0)
	for n := 0; n <= 300; n++ {
		d := Delay(strings.Repeat("x", n))
		if d < prev {
			t.Fatalf("Delay(len=%d) = %v decreased from %v", n, d, prev)
		}
		if d < BaseDelay || d > MaxDelay {
			t.Fatalf("Delay(len=%d) = %v out of [%v, %v]", n, d, BaseDelay, MaxDelay)
		}
		prev = d
	}
}

func TestScale(t *testing.T) {
	assert.Equal(t, 2*time.Second, Scale(time.Second, 2))
	assert.Equal(t, 500*time.Millisecond, Scale(time.Second, 0.5))
	assert.Equal(t, time.Duration(0), Scale(time.Second, 0))
	assert.Equal(t, time.Duration(0), Scale(time.Second, -1))
}

func TestManualScheduler_Order(t *testing.T) {
	s := NewManualScheduler()
	var got []string

	s.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	s.AfterFunc(time.Second, func() {
		got = append(got, "a")
		s.AfterFunc(500*time.Millisecond, func() { got = append(got, "a2") })
	})
	s.AfterFunc(2*time.Second, func() { got = append(got, "c") })

	s.Advance(1200 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, got)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 2200*time.Millisecond, s.Now())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	stop := s.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, stop.Stop())
	assert.False(t, stop.Stop())

	s.Advance(time.Minute)
	assert.False(t, ran)
}
