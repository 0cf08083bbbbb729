// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoOrder_Linear(t *testing.T) {
	g := New()
	g.AddNode("config")
	g.AddNode("store")
	g.AddNode("coordinator")
	require.NoError(t, g.AddEdge("store", "config"))
	require.NoError(t, g.AddEdge("coordinator", "store"))

	order, err := g.TopoOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "store", "coordinator"}, order)
}

func TestTopoOrder_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddNode("logger")
		g.AddNode("config")
		g.AddNode("cipher")
		g.AddNode("store")
		g.AddNode("coordinator")
		require.NoError(t, g.AddEdge("cipher", "config"))
		require.NoError(t, g.AddEdge("store", "config"))
		require.NoError(t, g.AddEdge("store", "logger"))
		require.NoError(t, g.AddEdge("coordinator", "cipher"))
		require.NoError(t, g.AddEdge("coordinator", "store"))
		return g
	}

	first, err := build().TopoOrder()
	require.NoError(t, err)

	// Kahn's with a name-sorted ready set: config unblocks cipher, which
	// sorts ahead of the still-pending logger root.
	assert.Equal(t, []string{"config", "cipher", "logger", "store", "coordinator"}, first)

	for range 10 {
		again, err := build().TopoOrder()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopoOrder_Cycle(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "a"))

	_, err := g.TopoOrder()
	require.ErrorIs(t, err, ErrCircularDependency)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
	assert.Contains(t, err.Error(), "c")
}

func TestTopoOrder_SelfCycle(t *testing.T) {
	g := New()
	g.AddNode("a")
	require.NoError(t, g.AddEdge("a", "a"))

	_, err := g.TopoOrder()
	require.ErrorIs(t, err, ErrCircularDependency)
}

func TestAddEdge_UnknownNode(t *testing.T) {
	g := New()
	g.AddNode("a")

	require.ErrorIs(t, g.AddEdge("a", "missing"), ErrUnknownNode)
	require.ErrorIs(t, g.AddEdge("missing", "a"), ErrUnknownNode)
}

func TestTopoOrder_Empty(t *testing.T) {
	order, err := New().TopoOrder()
	require.NoError(t, err)
	assert.Empty(t, order)
}
