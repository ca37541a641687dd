// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"
	"time"
)

// fakeScheduler хранит таймеры и запускает их только по команде теста.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// pending returns the durations of timers that are neither stopped nor fired.
func (s *fakeScheduler) pending() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []time.Duration
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t.d)
		}
	}
	return out
}

// fire runs the oldest pending timer with duration d on the calling
// goroutine. It reports false when there is none.
func (s *fakeScheduler) fire(d time.Duration) bool {
	s.mu.Lock()
	var target *fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.d == d {
			target = t
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	s.mu.Unlock()

	if target == nil {
		return false
	}
	target.f()
	return true
}
