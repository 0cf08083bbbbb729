// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package depgraph provides an explicit dependency graph for engine
// components. Composition roots declare every component and every edge up
// front, then ask for a deterministic initialization order; a cycle is
// reported as an error instead of being resolved implicitly.
package depgraph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCircularDependency is returned by [Graph.TopoOrder] when the declared
// edges contain a cycle.
var ErrCircularDependency = errors.New("circular dependency")

// ErrUnknownNode is returned when an edge references an undeclared node.
var ErrUnknownNode = errors.New("unknown node")

// Graph is a directed dependency graph over named components. The zero
// value is not usable; construct with [New]. Graph is not safe for
// concurrent use: it is meant to be built and resolved once at startup.
type Graph struct {
	nodes map[string]struct{}
	deps  map[string][]string // node -> nodes it depends on
}

// New returns an empty [Graph].
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		deps:  make(map[string][]string),
	}
}

// AddNode declares a component. Declaring the same name twice is a no-op.
func (g *Graph) AddNode(name string) {
	g.nodes[name] = struct{}{}
}

// AddEdge declares that node depends on dependency. Both ends must have been
// declared with [Graph.AddNode] first.
func (g *Graph) AddEdge(node, dependency string) error {
	if _, ok := g.nodes[node]; !ok {
		return fmt.Errorf("add edge %q -> %q: %w: %q", node, dependency, ErrUnknownNode, node)
	}
	if _, ok := g.nodes[dependency]; !ok {
		return fmt.Errorf("add edge %q -> %q: %w: %q", node, dependency, ErrUnknownNode, dependency)
	}

	g.deps[node] = append(g.deps[node], dependency)
	return nil
}

// TopoOrder returns every declared node in dependency order: a node appears
// only after everything it depends on. The order is deterministic — ties are
// broken by node name — so two runs over the same graph initialize
// components identically. A cycle yields [ErrCircularDependency] naming the
// nodes involved.
func (g *Graph) TopoOrder() ([]string, error) {
	// Kahn's algorithm with a sorted ready set for determinism.
	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for name := range g.nodes {
		indegree[name] = 0
	}
	for node, deps := range g.deps {
		for _, dep := range deps {
			indegree[node]++
			dependents[dep] = append(dependents[dep], node)
		}
	}

	var ready []string
	for name, degree := range indegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		released := make([]string, 0, len(dependents[node]))
		for _, dependent := range dependents[node] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				released = append(released, dependent)
			}
		}
		if len(released) > 0 {
			ready = append(ready, released...)
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.nodes) {
		remaining := make([]string, 0, len(g.nodes)-len(order))
		for name, degree := range indegree {
			if degree > 0 {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, fmt.Errorf("%w involving %v", ErrCircularDependency, remaining)
	}

	return order, nil
}
