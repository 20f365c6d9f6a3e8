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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	r, err := ParseRange("10.0.0.1-10.0.0.6")
	require.NoError(t, err)
	assert.Equal(t, Range{First: 0x0a000001, Last: 0x0a000006}, r)
	assert.Equal(t, "10.0.0.1-10.0.0.6", r.String())

	r, err = ParseRange("10.0.0.1-10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, r.First, r.Last)

	for _, in := range []string{
		"10.0.0.1",
		"10.0.0.6-10.0.0.1",
		"10.0.0.0/24-10.0.1.0",
		"10.0.0.1-10.0.1.0/24",
		"10.0.0.1-",
		"-10.0.0.1",
		"10.0.0.1-10.0.0.2-10.0.0.3",
	} {
		_, err := ParseRange(in)
		assert.Error(t, err, in)
	}
}

func TestRangeSubnets(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"10.0.0.1-10.0.0.6", []string{"10.0.0.1", "10.0.0.2/31", "10.0.0.4/31", "10.0.0.6"}},
		{"10.0.0.0-10.0.0.255", []string{"10.0.0.0/24"}},
		{"10.0.0.7-10.0.0.7", []string{"10.0.0.7"}},
		{"0.0.0.0-255.255.255.255", []string{"0.0.0.0/0"}},
		{"255.255.255.254-255.255.255.255", []string{"255.255.255.254/31"}},
		{"192.168.0.255-192.168.2.0", []string{"192.168.0.255", "192.168.1.0/24", "192.168.2.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRange(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatAll(r.Subnets()))
		})
	}
}

func TestInsertRange(t *testing.T) {
	tree := treeOf(t, "10.0.0.2")
	r, err := ParseRange("10.0.0.0-10.0.0.3")
	require.NoError(t, err)
	require.NoError(t, tree.InsertRange(r))
	assert.Equal(t, []string{"10.0.0.0/30"}, formatAll(tree.Subnets()))
}
