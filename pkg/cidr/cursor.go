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

// Cursor walks a tree in order without recursion. The top of its stack is
// the current node; the rest are ancestors still to be visited.
//
// A cursor does not modify the tree. Inserting into or removing from the
// tree invalidates it; call Begin again afterwards.
type Cursor struct {
	tree  *Tree
	stack []*node
}

func (t *Tree) Cursor() *Cursor {
	return &Cursor{tree: t}
}

// Begin positions the cursor on the smallest subnet.
func (c *Cursor) Begin() (Subnet, bool) {
	c.stack = make([]*node, 0, c.tree.Height())
	c.pushLeft(c.tree.root)
	return c.current()
}

// Next advances to the following subnet.
func (c *Cursor) Next() (Subnet, bool) {
	if len(c.stack) == 0 {
		return Subnet{}, false
	}
	n := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.pushLeft(n.right)
	return c.current()
}

func (c *Cursor) pushLeft(n *node) {
	for ; n != nil; n = n.left {
		c.stack = append(c.stack, n)
	}
}

func (c *Cursor) current() (Subnet, bool) {
	if len(c.stack) == 0 {
		return Subnet{}, false
	}
	return c.stack[len(c.stack)-1].subnet, true
}

// All iterates the stored subnets in ascending order.
func (t *Tree) All() iter.Seq[Subnet] {
	return func(yield func(Subnet) bool) {
		c := t.Cursor()
		for s, ok := c.Begin(); ok; s, ok = c.Next() {
			if !yield(s) {
				return
			}
		}
	}
}

type WalkPhase int

const (
	PreOrder WalkPhase = iota
	InOrder
	PostOrder
)

func (p WalkPhase) String() string {
	switch p {
	case PreOrder:
		return "preorder"
	case InOrder:
		return "inorder"
	case PostOrder:
		return "postorder"
	}
	return "unknown"
}

// Visitor is called three times per node by Walk.
type Visitor func(s Subnet, depth int, phase WalkPhase)

// Walk visits every node recursively, calling v before the left subtree,
// between the subtrees and after the right subtree.
func (t *Tree) Walk(v Visitor) {
	walk(t.root, 0, v)
}

func walk(n *node, depth int, v Visitor) {
	if n == nil {
		return
	}
	v(n.subnet, depth, PreOrder)
	walk(n.left, depth+1, v)
	v(n.subnet, depth, InOrder)
	walk(n.right, depth+1, v)
	v(n.subnet, depth, PostOrder)
}
