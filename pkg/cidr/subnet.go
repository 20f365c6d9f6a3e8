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

// Package cidr keeps canonical sets of IPv4 CIDR blocks and implements
// the set operations built on them: enumeration, aggregation and complement.
package cidr

import (
	"net/netip"
)

const MaxBits = 32

// Subnet is an IPv4 block: a host-order address and a prefix length.
// Once stored in a Tree the address is always the network address.
type Subnet struct {
	Address uint32
	Bits    uint8
}

// Mask returns the netmask for the given prefix length, 0xFFFFFF00 for 24.
func Mask(bits uint8) uint32 {
	if bits == 0 {
		return 0
	}
	if bits >= MaxBits {
		return ^uint32(0)
	}
	return ^uint32(0) << (MaxBits - bits)
}

// Host builds a /32 subnet from an address.
func Host(addr uint32) Subnet {
	return Subnet{Address: addr, Bits: MaxBits}
}

// Masked returns s with all bits beyond the prefix cleared.
func (s Subnet) Masked() Subnet {
	return Subnet{Address: s.Address & Mask(s.Bits), Bits: s.Bits}
}

// IsNormalized reports whether no host bits are set.
func (s Subnet) IsNormalized() bool {
	return s.Address&Mask(s.Bits) == s.Address
}

// Contains reports whether outer covers every address of inner.
func Contains(outer, inner Subnet) bool {
	m := Mask(outer.Bits)
	return outer.Bits <= inner.Bits && inner.Address&m == outer.Address&m
}

// Overlaps reports whether a and b share at least one address. Two CIDR
// blocks overlap only when one contains the other.
func Overlaps(a, b Subnet) bool {
	return Contains(a, b) || Contains(b, a)
}

// compareLoose masks both addresses to the shorter prefix before comparing,
// so a block compares equal to every block and host it contains.
//
//	10.0.0.1 == 10.0.0.0/24
//	10.0.0.1 >  10.0.0.0
//	0.0.0.0/0 == anything
func compareLoose(a, b Subnet) int {
	bits := min(a.Bits, b.Bits)
	m := Mask(bits)
	return compareUint32(a.Address&m, b.Address&m)
}

// compareStrict orders by masked network address first and, for the same
// network, puts the longer prefix first:
//
//	10.0.0.0/31 < 10.0.0.0/30
//	10.0.0.1 == 10.0.0.1
func compareStrict(a, b Subnet) int {
	if c := compareUint32(a.Address&Mask(a.Bits), b.Address&Mask(b.Bits)); c != 0 {
		return c
	}
	switch {
	case a.Bits > b.Bits:
		return -1
	case a.Bits < b.Bits:
		return 1
	}
	return 0
}

func compareUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Prefix converts s to a netip.Prefix.
func (s Subnet) Prefix() netip.Prefix {
	return netip.PrefixFrom(AddrFromUint32(s.Address), int(s.Bits))
}

// FromPrefix converts an IPv4 prefix. ok is false for IPv6 or invalid prefixes.
func FromPrefix(p netip.Prefix) (s Subnet, ok bool) {
	if !p.IsValid() {
		return Subnet{}, false
	}
	addr := p.Addr().Unmap()
	if !addr.Is4() {
		return Subnet{}, false
	}
	return Subnet{Address: AddrToUint32(addr), Bits: uint8(p.Bits())}, true
}

// AddrFromUint32 converts a host-order address to netip.Addr.
func AddrFromUint32(a uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)})
}

// AddrToUint32 converts an IPv4 netip.Addr to a host-order address.
func AddrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
