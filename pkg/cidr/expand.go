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

import "iter"

// First returns the network address of s.
func First(s Subnet) uint32 {
	return s.Address & Mask(s.Bits)
}

// Last returns the broadcast address of s.
func Last(s Subnet) uint32 {
	return s.Address | ^Mask(s.Bits)
}

// Increment returns a+1; 255.255.255.255 wraps to 0.0.0.0.
func Increment(a uint32) uint32 {
	return a + 1
}

// Size returns the number of addresses in s.
func Size(s Subnet) uint64 {
	return uint64(1) << (MaxBits - s.Bits)
}

// Enumerate yields every address of s in ascending order. A /0 yields
// 2^32 values; limiting is up to the caller.
func Enumerate(s Subnet) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		first, last := First(s), Last(s)
		for a := first; ; a = Increment(a) {
			if !yield(a) || a == last {
				return
			}
		}
	}
}
