/*
 * Copyright (C) 2022 IBM, Inc.
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

package utils

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

var (
	registeredChannels []chan struct{}
	chanMutex          sync.Mutex
	exiting            bool
)

func RegisterExitChannel(ch chan struct{}) {
	chanMutex.Lock()
	defer chanMutex.Unlock()
	if exiting {
		close(ch)
		return
	}
	registeredChannels = append(registeredChannels, ch)
}

// ExitChannel returns a new channel that is closed once an exit signal is received.
func ExitChannel() <-chan struct{} {
	ch := make(chan struct{})
	RegisterExitChannel(ch)
	return ch
}

// IsClosed reports, without blocking, whether an exit channel has been closed.
func IsClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func SetupElegantExit() {
	log.Debugf("entering SetupElegantExit")
	chanMutex.Lock()
	registeredChannels = make([]chan struct{}, 0)
	exiting = false
	chanMutex.Unlock()

	exitSigChan := make(chan os.Signal, 1)
	log.Debugf("registered exit signal channel")
	signal.Notify(exitSigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		// wait for exit signal; then stop long running commands
		sig := <-exitSigChan
		signal.Stop(exitSigChan)
		log.Debugf("received exit signal = %v", sig)
		closeExitChannels()
		log.Debugf("exiting SetupElegantExit go function")
	}()
	log.Debugf("exiting SetupElegantExit")
}

func closeExitChannels() {
	chanMutex.Lock()
	defer chanMutex.Unlock()
	exiting = true
	for _, ch := range registeredChannels {
		close(ch)
	}
	registeredChannels = nil
}
