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
	"math/bits"
	"strings"
)

// Range is an inclusive span of addresses.
type Range struct {
	First uint32
	Last  uint32
}

// ParseRange reads "a.b.c.d-e.f.g.h". Both ends are plain addresses and
// the first must not be greater than the last.
func ParseRange(text string) (Range, error) {
	from, to, found := strings.Cut(text, "-")
	if !found {
		return Range{}, parseError(text, "missing '-' in range")
	}
	first, err := Parse(from)
	if err != nil || first.Bits != MaxBits {
		return Range{}, parseError(text, "range start is not an address")
	}
	last, err := Parse(to)
	if err != nil || last.Bits != MaxBits {
		return Range{}, parseError(text, "range end is not an address")
	}
	if first.Address > last.Address {
		return Range{}, parseError(text, "range start is after range end")
	}
	return Range{First: first.Address, Last: last.Address}, nil
}

func (r Range) String() string {
	return FormatAddr(r.First) + "-" + FormatAddr(r.Last)
}

// Subnets returns the minimal list of blocks covering exactly r, in order.
func (r Range) Subnets() []Subnet {
	var out []Subnet
	for a := r.First; ; {
		// largest aligned block starting at a that does not pass r.Last
		size := uint8(MaxBits - min(bits.TrailingZeros32(a), MaxBits))
		for size < MaxBits && Last(Subnet{Address: a, Bits: size}) > r.Last {
			size++
		}
		s := Subnet{Address: a, Bits: size}
		out = append(out, s)
		end := Last(s)
		if end >= r.Last {
			return out
		}
		a = end + 1
	}
}

// InsertRange inserts the blocks covering r.
func (t *Tree) InsertRange(r Range) error {
	for _, s := range r.Subnets() {
		if _, err := t.Insert(s); err != nil {
			return err
		}
	}
	return nil
}
