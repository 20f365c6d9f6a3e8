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
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeOf(t *testing.T, texts ...string) *Tree {
	t.Helper()
	tree := &Tree{}
	for _, s := range mustParseAll(t, texts...) {
		_, err := tree.Insert(s)
		require.NoError(t, err)
	}
	return tree
}

func formatAll(subnets []Subnet) []string {
	out := make([]string, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, s.String())
	}
	return out
}

// checkInvariants verifies ordering, non-overlap, cached heights and the
// AVL balance condition.
func checkInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	var check func(n *node) int
	check = func(n *node) int {
		if n == nil {
			return 0
		}
		lh, rh := check(n.left), check(n.right)
		require.Equal(t, max(lh, rh)+1, n.height, "cached height of %s", n.subnet)
		require.LessOrEqual(t, abs(lh-rh), 1, "balance factor of %s", n.subnet)
		require.True(t, n.subnet.IsNormalized(), "%s is not normalized", n.subnet)
		return n.height
	}
	check(tree.root)

	subnets := tree.Subnets()
	require.Len(t, subnets, tree.Len())
	for i := 1; i < len(subnets); i++ {
		prev, cur := subnets[i-1], subnets[i]
		require.Less(t, Last(prev), First(cur), "%s and %s out of order or overlapping", prev, cur)
	}
}

func TestInsertSorted(t *testing.T) {
	tree := treeOf(t, "10.0.0.3", "10.0.0.1", "192.168.0.0/16", "1.1.1.1", "10.0.0.2")
	assert.Equal(t, []string{"1.1.1.1", "10.0.0.1", "10.0.0.2", "10.0.0.3", "192.168.0.0/16"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)
}

func TestInsertMasksHostBits(t *testing.T) {
	tree := treeOf(t, "10.1.2.3/8")
	assert.Equal(t, []string{"10.0.0.0/8"}, formatAll(tree.Subnets()))
}

func TestInsertIdempotent(t *testing.T) {
	tree := treeOf(t, "10.0.0.0/24", "10.0.1.1")
	stored, err := tree.Insert(mustParse(t, "10.0.0.0/24"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", stored.String())
	assert.Equal(t, 2, tree.Len())

	_, err = tree.Insert(mustParse(t, "10.0.1.1"))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestInsertContainment(t *testing.T) {
	// narrower first, broader absorbs
	tree := treeOf(t, "10.0.0.1", "10.0.0.128/25", "10.0.0.0/24")
	assert.Equal(t, []string{"10.0.0.0/24"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)

	// broader first, narrower is covered
	tree = treeOf(t, "10.0.0.0/24", "10.0.0.1", "10.0.0.128/25")
	assert.Equal(t, []string{"10.0.0.0/24"}, formatAll(tree.Subnets()))

	stored, err := tree.Insert(mustParse(t, "10.0.0.77"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/24", stored.String())
}

func TestInsertBroaderAbsorbsMany(t *testing.T) {
	tree := &Tree{}
	for i := 0; i < 1024; i++ {
		_, err := tree.Insert(Host(0x0a000000 + uint32(i)*7))
		require.NoError(t, err)
	}
	_, err := tree.Insert(Host(0x0b000001))
	require.NoError(t, err)
	_, err = tree.Insert(Host(0x09000001))
	require.NoError(t, err)
	checkInvariants(t, tree)

	stored, err := tree.Insert(mustParse(t, "10.0.0.0/16"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", stored.String())
	assert.Equal(t, []string{"9.0.0.1", "10.0.0.0/16", "11.0.0.1"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)

	_, err = tree.Insert(mustParse(t, "0.0.0.0/0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.0.0/0"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)
}

func TestPrune(t *testing.T) {
	tree := treeOf(t, "10.0.0.1", "10.0.0.2", "10.0.1.0/24", "10.1.0.0/16", "11.0.0.0/8", "9.255.255.255")
	removed := tree.Prune(mustParse(t, "10.0.0.0/16"))
	assert.Equal(t, 3, removed)
	assert.Equal(t, []string{"9.255.255.255", "10.1.0.0/16", "11.0.0.0/8"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)

	// nothing is contained in a narrower block
	assert.Equal(t, 0, tree.Prune(mustParse(t, "11.0.0.0/9")))
	assert.Equal(t, 3, tree.Len())
}

func TestRemove(t *testing.T) {
	tree := treeOf(t, "10.0.0.1", "10.0.0.2", "10.0.1.0/24", "10.1.0.0/16", "11.0.0.0/8")

	// exact match only
	assert.False(t, tree.Remove(mustParse(t, "10.0.1.0/25")))
	assert.False(t, tree.Remove(mustParse(t, "10.0.0.0/8")))
	assert.False(t, tree.Remove(mustParse(t, "10.0.0.3")))
	assert.Equal(t, 5, tree.Len())

	assert.True(t, tree.Remove(mustParse(t, "10.0.1.0/24")))
	assert.True(t, tree.Remove(mustParse(t, "10.0.0.1")))
	// host bits are masked before comparing
	assert.True(t, tree.Remove(mustParse(t, "11.2.3.4/8")))
	assert.Equal(t, []string{"10.0.0.2", "10.1.0.0/16"}, formatAll(tree.Subnets()))
	checkInvariants(t, tree)
}

func TestLookup(t *testing.T) {
	tree := treeOf(t, "10.0.0.0/8", "192.168.1.1")

	s, ok := tree.Lookup(mustParse(t, "10.20.30.40"))
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/8", s.String())

	_, ok = tree.Lookup(mustParse(t, "10.0.0.0/7"))
	assert.False(t, ok)
	_, ok = tree.Lookup(mustParse(t, "192.168.1.2"))
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	tree := treeOf(t, "10.0.0.0/8", "192.168.1.1")
	tree.Clear()
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Height())
	assert.Empty(t, tree.Subnets())
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	tree := &Tree{}
	var reference []Subnet

	for i := 0; i < 5000; i++ {
		s := Subnet{Address: rnd.Uint32() & 0x0fffffff, Bits: uint8(16 + rnd.IntN(17))}.Masked()
		switch rnd.IntN(10) {
		case 0:
			if len(reference) > 0 {
				victim := reference[rnd.IntN(len(reference))]
				require.True(t, tree.Remove(victim))
				reference = slices.DeleteFunc(reference, func(r Subnet) bool { return r == victim })
			}
		case 1:
			tree.Prune(s)
			reference = slices.DeleteFunc(reference, func(r Subnet) bool { return Contains(s, r) })
		default:
			_, err := tree.Insert(s)
			require.NoError(t, err)
			if !slices.ContainsFunc(reference, func(r Subnet) bool { return Contains(r, s) }) {
				reference = slices.DeleteFunc(reference, func(r Subnet) bool { return Contains(s, r) })
				reference = append(reference, s)
			}
		}
	}

	checkInvariants(t, tree)
	slices.SortFunc(reference, compareStrict)
	assert.Equal(t, reference, tree.Subnets())
}

func TestCursor(t *testing.T) {
	tree := &Tree{}
	c := tree.Cursor()
	_, ok := c.Begin()
	assert.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok)

	tree = treeOf(t, "3.0.0.0/8", "1.0.0.0/8", "2.0.0.0/8", "5.0.0.0/8", "4.0.0.0/8")
	c = tree.Cursor()
	var got []string
	for s, ok := c.Begin(); ok; s, ok = c.Next() {
		got = append(got, s.String())
	}
	assert.Equal(t, []string{"1.0.0.0/8", "2.0.0.0/8", "3.0.0.0/8", "4.0.0.0/8", "5.0.0.0/8"}, got)

	// restartable
	s, ok := c.Begin()
	require.True(t, ok)
	assert.Equal(t, "1.0.0.0/8", s.String())
}

func TestAllStopsEarly(t *testing.T) {
	tree := treeOf(t, "1.0.0.0/8", "2.0.0.0/8", "3.0.0.0/8")
	var got []string
	for s := range tree.All() {
		got = append(got, s.String())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1.0.0.0/8", "2.0.0.0/8"}, got)
}

func TestWalk(t *testing.T) {
	tree := treeOf(t, "2.0.0.0/8", "1.0.0.0/8", "3.0.0.0/8")

	var inorder []string
	counts := map[WalkPhase]int{}
	maxDepth := 0
	tree.Walk(func(s Subnet, depth int, phase WalkPhase) {
		counts[phase]++
		maxDepth = max(maxDepth, depth)
		if phase == InOrder {
			inorder = append(inorder, s.String())
		}
	})
	assert.Equal(t, []string{"1.0.0.0/8", "2.0.0.0/8", "3.0.0.0/8"}, inorder)
	assert.Equal(t, map[WalkPhase]int{PreOrder: 3, InOrder: 3, PostOrder: 3}, counts)
	assert.Equal(t, 1, maxDepth)
}
