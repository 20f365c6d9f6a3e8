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

package cidr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvariantViolation is returned when the tree detects a state that
// correct operation never produces. The running command must abort.
var ErrInvariantViolation = errors.New("cidr tree invariant violation")

// ParseError describes a token that is not a valid address, subnet or range.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Input, e.Reason)
}

func parseError(input, reason string) error {
	return &ParseError{Input: input, Reason: reason}
}
