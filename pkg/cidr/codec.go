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
	"strconv"
	"strings"
)

// longest valid token: "255.255.255.255/32"
const MaxTokenLen = 18

// Parse reads "a.b.c.d" or "a.b.c.d/p". The prefix defaults to 32. Host
// bits beyond the prefix are accepted as is; they are cleared on insert.
func Parse(text string) (Subnet, error) {
	var octets [4]uint32
	digits, part := 0, 0
	i := 0

loop:
	for ; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			if digits >= 3 {
				return Subnet{}, parseError(text, "octet has more than 3 digits")
			}
			octets[part] = octets[part]*10 + uint32(c-'0')
			if octets[part] > 255 {
				return Subnet{}, parseError(text, "octet out of range")
			}
			digits++
		case c == '.':
			if digits == 0 {
				return Subnet{}, parseError(text, "missing octet digit")
			}
			if part >= 3 {
				return Subnet{}, parseError(text, "too many octets")
			}
			digits = 0
			part++
		case c == '/':
			break loop
		default:
			return Subnet{}, parseError(text, "unexpected character "+strconv.QuoteRune(rune(c)))
		}
	}

	if digits == 0 {
		return Subnet{}, parseError(text, "missing octet digit")
	}
	if part != 3 {
		return Subnet{}, parseError(text, "expected 4 octets")
	}

	addr := octets[0]<<24 | octets[1]<<16 | octets[2]<<8 | octets[3]
	bits := uint32(MaxBits)

	if i < len(text) {
		// text[i] == '/'
		i++
		digits, bits = 0, 0
		for ; i < len(text); i++ {
			c := text[i]
			if c < '0' || c > '9' {
				return Subnet{}, parseError(text, "unexpected character "+strconv.QuoteRune(rune(c))+" in prefix")
			}
			if digits >= 2 {
				return Subnet{}, parseError(text, "prefix has more than 2 digits")
			}
			bits = bits*10 + uint32(c-'0')
			if bits > MaxBits {
				return Subnet{}, parseError(text, "prefix out of range")
			}
			digits++
		}
		if digits == 0 {
			return Subnet{}, parseError(text, "missing prefix length")
		}
	}

	return Subnet{Address: addr, Bits: uint8(bits)}, nil
}

// ParseStrict is Parse that additionally rejects host bits set beyond the
// prefix: 10.0.0.1/31 fails, 10.0.0.0/31 and 10.0.0.1/32 pass.
func ParseStrict(text string) (Subnet, error) {
	s, err := Parse(text)
	if err != nil {
		return s, err
	}
	if !s.IsNormalized() {
		return Subnet{}, parseError(text, "host bits set beyond prefix")
	}
	return s, nil
}

// Format renders s as "a.b.c.d", with "/p" appended unless p is 32.
func Format(s Subnet) string {
	return s.String()
}

func (s Subnet) String() string {
	var sb strings.Builder
	sb.Grow(MaxTokenLen)
	writeAddr(&sb, s.Address)
	if s.Bits != MaxBits {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(int(s.Bits)))
	}
	return sb.String()
}

// FormatAddr renders a bare address.
func FormatAddr(a uint32) string {
	var sb strings.Builder
	sb.Grow(15)
	writeAddr(&sb, a)
	return sb.String()
}

func writeAddr(sb *strings.Builder, a uint32) {
	sb.WriteString(strconv.Itoa(int(a >> 24)))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(int(a >> 16 & 0xff)))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(int(a >> 8 & 0xff)))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(int(a & 0xff)))
}

// MarshalText lets subnets be written directly by the json/yaml encoders.
func (s Subnet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Subnet) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
