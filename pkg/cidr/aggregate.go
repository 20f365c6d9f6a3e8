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

import "container/list"

// Aggregate merges sorted, non-overlapping subnets into the minimal list of
// blocks covering exactly the same addresses.
//
// Levels are processed from /31 up to /0, so both halves of a block have
// reached their final size before the block itself is considered.
func Aggregate(sorted []Subnet) []Subnet {
	l := list.New()
	for _, s := range sorted {
		l.PushBack(s.Masked())
	}

	for bits := MaxBits - 1; bits >= 0; bits-- {
		mergeLevel(l, uint8(bits))
	}

	out := make([]Subnet, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Subnet))
	}
	return out
}

// mergeLevel replaces every run of entries that exactly fills a block of the
// given prefix length with that block.
func mergeLevel(l *list.List, bits uint8) {
	for e := l.Front(); e != nil; e = e.Next() {
		cur := e.Value.(Subnet)
		if cur.Bits <= bits {
			continue
		}
		block := Subnet{Address: cur.Address & Mask(bits), Bits: bits}
		if cur.Address != block.Address {
			continue
		}

		end, stop := Last(cur), e
		for next := e.Next(); next != nil; next = next.Next() {
			n := next.Value.(Subnet)
			if n.Bits <= bits || n.Address&Mask(bits) != block.Address || n.Address != end+1 {
				break
			}
			end, stop = Last(n), next
		}
		if stop == e || end != Last(block) {
			continue
		}

		for next := e.Next(); ; {
			after := next.Next()
			l.Remove(next)
			if next == stop {
				break
			}
			next = after
		}
		e.Value = block
	}
}
