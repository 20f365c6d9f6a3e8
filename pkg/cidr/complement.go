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
	"github.com/gaissmai/bart"
)

// Universe is 0.0.0.0/0.
var Universe = Subnet{}

// Invert returns the minimal list of blocks covering every address of
// 0.0.0.0/0 that no subnet of t covers, in ascending order.
func Invert(t *Tree) []Subnet {
	excluded := new(bart.Table[struct{}])
	for s := range t.All() {
		excluded.Insert(s.Prefix(), struct{}{})
	}

	var out []Subnet
	subdivide(excluded, Universe, &out)
	return out
}

// subdivide emits c when it is free, drops it when an excluded subnet
// covers it, and otherwise recurses into both halves.
func subdivide(excluded *bart.Table[struct{}], c Subnet, out *[]Subnet) {
	pfx := c.Prefix()
	if !excluded.OverlapsPrefix(pfx) {
		*out = append(*out, c)
		return
	}
	if _, covered := excluded.LookupPrefix(pfx); covered {
		return
	}
	// an overlapping /32 is always covered, so c.Bits < 32 here
	lo, hi := Halves(c)
	subdivide(excluded, lo, out)
	subdivide(excluded, hi, out)
}

// Halves splits s into its two child blocks of prefix length s.Bits+1.
// s must be shorter than /32.
func Halves(s Subnet) (lo, hi Subnet) {
	bits := s.Bits + 1
	lo = Subnet{Address: s.Address & Mask(s.Bits), Bits: bits}
	hi = Subnet{Address: lo.Address | uint32(1)<<(MaxBits-bits), Bits: bits}
	return lo, hi
}
