package dijkstra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/transcat/internal/dijkstra"
	"github.com/avlasov/transcat/internal/graph"
)

func TestNewEngine_NilGraph(t *testing.T) {
	_, err := dijkstra.NewEngine(nil)
	assert.ErrorIs(t, err, dijkstra.ErrNilGraph)
}

func TestEngine_ShortestPath(t *testing.T) {
	// 0 --1--> 1 --2--> 2, and a direct 0 --5--> 2.
	g := graph.New()
	g.SetVertexCount(3)
	_, err := g.AddEdge(0, 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 2, 2)
	require.NoError(t, err)
	_, err = g.AddEdge(0, 2, 5)
	require.NoError(t, err)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)
	require.NoError(t, engine.Update())

	path, ok := engine.BuildRoute(0, 2)
	require.True(t, ok)
	assert.Equal(t, 3.0, path.Weight)
	assert.Len(t, path.Edges, 2)
}

func TestEngine_Unreachable(t *testing.T) {
	g := graph.New()
	g.SetVertexCount(2)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)
	require.NoError(t, engine.Update())

	_, ok := engine.BuildRoute(0, 1)
	assert.False(t, ok)
}

func TestEngine_NegativeWeightRejected(t *testing.T) {
	g := graph.New()
	g.SetVertexCount(2)
	_, err := g.AddEdge(0, 1, -1)
	require.NoError(t, err)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)

	err = engine.Update()
	assert.ErrorIs(t, err, dijkstra.ErrNegativeWeight)
}

func TestEngine_SameSourceAndDestination(t *testing.T) {
	g := graph.New()
	g.SetVertexCount(1)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)
	require.NoError(t, engine.Update())

	path, ok := engine.BuildRoute(0, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, path.Weight)
	assert.Empty(t, path.Edges)
}

func TestEngine_OutOfRangeVertices(t *testing.T) {
	g := graph.New()
	g.SetVertexCount(1)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)
	require.NoError(t, engine.Update())

	_, ok := engine.BuildRoute(0, 5)
	assert.False(t, ok)
}

func TestEngine_TieBreaksByEdgeInsertionOrder(t *testing.T) {
	// Two equal-weight paths 0->1->2 and 0->2 directly via a different edge;
	// both edges reaching 2 have the same total weight, so BuildRoute must
	// consistently pick one (the first relaxed wins, since a strictly-less
	// comparison never replaces an already-equal label).
	g := graph.New()
	g.SetVertexCount(3)
	first, err := g.AddEdge(0, 2, 2)
	require.NoError(t, err)
	_, err = g.AddEdge(0, 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 2, 1)
	require.NoError(t, err)

	engine, err := dijkstra.NewEngine(g)
	require.NoError(t, err)
	require.NoError(t, engine.Update())

	path, ok := engine.BuildRoute(0, 2)
	require.True(t, ok)
	assert.Equal(t, 2.0, path.Weight)
	assert.Equal(t, []int{first}, path.Edges, "the first-relaxed equal-weight edge should win")
}
