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

package commands

import (
	"iter"

	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/cidr"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command is an operation on the set read from the input.
type Command struct {
	Name        string
	Description string
	run         func(r *Runner, tree *cidr.Tree) (iter.Seq[string], error)
}

var commands = []Command{
	{Name: "invert", Description: "Invert list of subnets (find address ranges not covered)", run: (*Runner).invert},
	{Name: "filter", Description: "Filter list of addresses by subnet", run: (*Runner).filter},
	{Name: "inflate", Description: "Expand list of subnets into addresses", run: (*Runner).inflate},
	{Name: "deflate", Description: "Find the minimal list of subnets covering the input", run: (*Runner).deflate},
	{Name: "sort", Description: "Sort and deduplicate addresses and subnets", run: (*Runner).sort},
}

// List returns every command, in the order they are documented.
func List() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

func Find(name string) (Command, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

func formatted(subnets iter.Seq[cidr.Subnet]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range subnets {
			if !yield(cidr.Format(s)) {
				return
			}
		}
	}
}

func fromSlice(subnets []cidr.Subnet) iter.Seq[cidr.Subnet] {
	return func(yield func(cidr.Subnet) bool) {
		for _, s := range subnets {
			if !yield(s) {
				return
			}
		}
	}
}

// inOrder collects the stored subnets with a walk, keeping only the in-order visits.
func inOrder(tree *cidr.Tree) []cidr.Subnet {
	out := make([]cidr.Subnet, 0, tree.Len())
	tree.Walk(func(s cidr.Subnet, _ int, phase cidr.WalkPhase) {
		if phase == cidr.InOrder {
			out = append(out, s)
		}
	})
	return out
}

func (r *Runner) invert(tree *cidr.Tree) (iter.Seq[string], error) {
	holes := cidr.Invert(tree)
	log.Debugf("invert: %d blocks not covered by %d subnets", len(holes), tree.Len())
	r.metrics.blocks.WithLabelValues("invert").Add(float64(len(holes)))
	return formatted(fromSlice(holes)), nil
}

func (r *Runner) sort(tree *cidr.Tree) (iter.Seq[string], error) {
	r.metrics.blocks.WithLabelValues("sort").Add(float64(tree.Len()))
	return formatted(tree.All()), nil
}

func (r *Runner) deflate(tree *cidr.Tree) (iter.Seq[string], error) {
	blocks := cidr.Aggregate(inOrder(tree))
	log.Debugf("deflate: %d subnets merged into %d blocks", tree.Len(), len(blocks))
	r.metrics.blocks.WithLabelValues("deflate").Add(float64(len(blocks)))
	return formatted(fromSlice(blocks)), nil
}

func (r *Runner) filter(tree *cidr.Tree) (iter.Seq[string], error) {
	params := r.opts.FilterOptions
	refs, err := parseRefs(params)
	if err != nil {
		return nil, err
	}
	kept := make([]cidr.Subnet, 0, tree.Len())
	for s := range tree.All() {
		if containedInAny(refs, s) {
			kept = append(kept, s)
		}
	}
	log.Debugf("filter: kept %d of %d subnets", len(kept), tree.Len())
	r.metrics.blocks.WithLabelValues("filter").Add(float64(len(kept)))
	return formatted(fromSlice(kept)), nil
}

func parseRefs(params api.FilterOptions) ([]cidr.Subnet, error) {
	if len(params.By) == 0 {
		return nil, errors.New("--by is required")
	}
	refs := make([]cidr.Subnet, 0, len(params.By))
	for _, by := range params.By {
		s, err := cidr.Parse(by)
		if err != nil {
			return nil, errors.Wrap(err, "invalid --by")
		}
		refs = append(refs, s)
	}
	return refs, nil
}

func containedInAny(refs []cidr.Subnet, s cidr.Subnet) bool {
	for _, ref := range refs {
		if cidr.Contains(ref, s) {
			return true
		}
	}
	return false
}

func (r *Runner) inflate(tree *cidr.Tree) (iter.Seq[string], error) {
	limit := r.opts.MaxAddresses
	subnets := inOrder(tree)
	enumerated := r.metrics.addresses
	return func(yield func(string) bool) {
		var n uint64
		for _, s := range subnets {
			for a := range cidr.Enumerate(s) {
				if limit != 0 && n == limit {
					log.Warnf("inflate: stopped after %d addresses", limit)
					return
				}
				if !yield(cidr.FormatAddr(a)) {
					return
				}
				enumerated.Inc()
				n++
			}
		}
	}, nil
}
