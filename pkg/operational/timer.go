/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package operational

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

type Timer struct {
	clock     clock.Clock
	startTime *time.Time
	observer  prometheus.Observer
}

func NewTimer(clk clock.Clock, o prometheus.Observer) *Timer {
	return &Timer{
		clock:    clk,
		observer: o,
	}
}

// Start starts or restarts the timer
func (t *Timer) Start() time.Time {
	now := t.clock.Now()
	t.startTime = &now
	return now
}

// ObserveSeconds stops the timer and records the elapsed time. It panics if Start was never called.
func (t *Timer) ObserveSeconds() time.Duration {
	if t.startTime == nil {
		panic("Timer not started")
	}
	elapsed := t.clock.Since(*t.startTime)
	t.observer.Observe(elapsed.Seconds())
	t.startTime = nil
	return elapsed
}
