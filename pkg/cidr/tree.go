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
	"github.com/pkg/errors"
)

type node struct {
	subnet      Subnet
	left, right *node
	height      int
}

// Tree is an AVL tree holding a canonical set of subnets: read in order,
// the subnets are sorted by network address and no two of them overlap.
//
// The zero value is an empty tree. A Tree is not safe for concurrent use.
type Tree struct {
	root *node
	size int
}

// Len returns the number of stored subnets.
func (t *Tree) Len() int {
	return t.size
}

// Height returns the height of the tree, 0 when empty.
func (t *Tree) Height() int {
	return height(t.root)
}

// Clear drops every node.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
}

// Insert adds s to the set and returns the subnet that now covers it.
//
// If a stored subnet already covers s, the tree is unchanged and that subnet
// is returned. If s is broader than stored subnets, they are pruned and s is
// stored in their place.
func (t *Tree) Insert(s Subnet) (Subnet, error) {
	s = s.Masked()
	pruned := false

	for {
		// slots visited from the root, for the bottom-up rebalance
		path := make([]**node, 0, height(t.root)+1)
		slot := &t.root
		path = append(path, slot)

		for *slot != nil {
			c := compareLoose((*slot).subnet, s)
			if c == 0 {
				break
			}
			if c < 0 {
				slot = &(*slot).right
			} else {
				slot = &(*slot).left
			}
			path = append(path, slot)
		}

		if existing := *slot; existing != nil {
			if existing.subnet.Bits <= s.Bits {
				return existing.subnet, nil
			}
			if pruned {
				return Subnet{}, errors.Wrapf(ErrInvariantViolation,
					"inserting %s: %s still conflicts after pruning", s, existing.subnet)
			}
			t.Prune(s)
			pruned = true
			continue
		}

		*slot = &node{subnet: s, height: 1}
		t.size++
		for i := len(path) - 1; i >= 0; i-- {
			*path[i] = balance(*path[i])
		}
		return s, nil
	}
}

// Prune removes every stored subnet contained in s and returns how many
// were removed.
func (t *Tree) Prune(s Subnet) int {
	s = s.Masked()
	removed := 0
	t.root = prune(t.root, s, &removed)
	t.size -= removed
	return removed
}

// Remove deletes the subnet equal to s, both address and prefix length.
// It reports whether a subnet was removed.
func (t *Tree) Remove(s Subnet) bool {
	var removed bool
	t.root, removed = remove(t.root, s)
	if removed {
		t.size--
	}
	return removed
}

// Lookup returns the stored subnet covering s, if any.
func (t *Tree) Lookup(s Subnet) (Subnet, bool) {
	n := t.root
	for n != nil {
		c := compareLoose(n.subnet, s)
		switch {
		case c < 0:
			n = n.right
		case c > 0:
			n = n.left
		default:
			if n.subnet.Bits <= s.Bits {
				return n.subnet, true
			}
			return Subnet{}, false
		}
	}
	return Subnet{}, false
}

// Subnets returns the stored subnets in ascending order.
func (t *Tree) Subnets() []Subnet {
	out := make([]Subnet, 0, t.size)
	c := t.Cursor()
	for s, ok := c.Begin(); ok; s, ok = c.Next() {
		out = append(out, s)
	}
	return out
}

func remove(n *node, s Subnet) (*node, bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := compareStrict(n.subnet, s); {
	case c > 0:
		n.left, removed = remove(n.left, s)
	case c < 0:
		n.right, removed = remove(n.right, s)
	default:
		n, removed = detach(n), true
	}
	return balance(n), removed
}

func prune(n *node, s Subnet, removed *int) *node {
	if n == nil {
		return nil
	}
	n.left = prune(n.left, s, removed)
	n.right = prune(n.right, s, removed)

	if Contains(s, n.subnet) {
		*removed++
		n = detach(n)
	}
	return rebalance(n)
}

// detach unlinks n from its subtree and returns the subtree root that
// replaces it. With two children, n takes over its in-order successor's
// subnet and the successor is removed from the right subtree.
func detach(n *node) *node {
	switch {
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	}
	succ := n.right
	for succ.left != nil {
		succ = succ.left
	}
	n.subnet = succ.subnet
	n.right, _ = remove(n.right, succ.subnet)
	return n
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func fixHeight(n *node) {
	n.height = max(height(n.left), height(n.right)) + 1
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fixHeight(x)
	fixHeight(y)
	return y
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fixHeight(y)
	fixHeight(x)
	return x
}

// balance restores the AVL condition at n, assuming both children are AVL
// trees whose heights differ by at most 2.
func balance(n *node) *node {
	if n == nil {
		return nil
	}
	fixHeight(n)

	switch bf := balanceFactor(n); {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// rebalance is balance for subtrees whose children may differ in height by
// more than 2, which happens when prune drops a whole range at once. When a
// rotation is not enough, the subtree is rebuilt from its in-order nodes.
func rebalance(n *node) *node {
	n = balance(n)
	if n == nil {
		return nil
	}
	if abs(balanceFactor(n)) > 1 || abs(balanceFactor(n.left)) > 1 || abs(balanceFactor(n.right)) > 1 {
		nodes := collect(n, make([]*node, 0, 1<<min(n.height, 16)))
		return build(nodes)
	}
	return n
}

func collect(n *node, out []*node) []*node {
	if n == nil {
		return out
	}
	out = collect(n.left, out)
	out = append(out, n)
	return collect(n.right, out)
}

func build(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	mid := len(nodes) / 2
	n := nodes[mid]
	n.left = build(nodes[:mid])
	n.right = build(nodes[mid+1:])
	fixHeight(n)
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
