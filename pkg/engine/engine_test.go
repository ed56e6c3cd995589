package engine

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/pkg/partition"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

// paddedCOO builds a square COO over the padded node range, the same shape
// graphio.LoadEdgeList produces.
func paddedCOO(rawNodes uint32, units int, edges [][2]uint32) *sparse.COO {
	n := partition.PaddedNodeCount(rawNodes, units)
	coo := &sparse.COO{NumRows: n, NumCols: n, NumEdges: uint32(len(edges))}
	for _, e := range edges {
		coo.RowIdxs = append(coo.RowIdxs, e[0])
		coo.ColIdxs = append(coo.ColIdxs, e[1])
	}
	return coo
}

// referenceLevels is a plain queue BFS from node 0; unreached nodes keep
// level 0.
func referenceLevels(numNodes uint32, edges [][2]uint32) []types.Level {
	adj := make([][]uint32, numNodes)
	for _, e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
	}

	levels := make([]types.Level, numNodes)
	seen := make([]bool, numNodes)
	seen[0] = true
	queue := []uint32{0}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if !seen[w] {
				seen[w] = true
				levels[w] = levels[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return levels
}

func randomEdges(rng *rand.Rand, numNodes uint32, numEdges int) [][2]uint32 {
	edges := make([][2]uint32, 0, numEdges)
	for len(edges) < numEdges {
		src := rng.Uint32() % numNodes
		dst := rng.Uint32() % numNodes
		if src == dst {
			continue
		}
		edges = append(edges, [2]uint32{src, dst})
	}
	return edges
}

func TestSingleEdge(t *testing.T) {
	edges := [][2]uint32{{0, 1}}
	coo := paddedCOO(2, 8, edges)

	eng := New(Options{Units: 8, Algorithm: types.TopDown, Partition: types.BySource})
	res, err := eng.Run(coo)
	require.NoError(t, err)

	require.Equal(t, types.Level(0), res.Levels[0])
	require.Equal(t, types.Level(1), res.Levels[1])
	for n := 2; n < len(res.Levels); n++ {
		require.Equal(t, types.Level(0), res.Levels[n], "node %d", n)
	}
	require.Equal(t, 2, res.Rounds)
}

func TestAllVariantsAgree(t *testing.T) {
	const (
		rawNodes = 200
		units    = 8
	)
	rng := rand.New(rand.NewSource(42))
	edges := randomEdges(rng, rawNodes, 800)
	coo := paddedCOO(rawNodes, units, edges)
	want := referenceLevels(coo.NumRows, edges)

	algorithms := []types.Algorithm{types.TopDown, types.BottomUp, types.EdgeCentric}
	partitions := []types.Partition{types.BySource, types.ByDestination, types.Grid2D}
	for _, alg := range algorithms {
		for _, part := range partitions {
			t.Run(fmt.Sprintf("%v-%v", alg, part), func(t *testing.T) {
				eng := New(Options{Units: units, Algorithm: alg, Partition: part})
				res, err := eng.Run(coo)
				require.NoError(t, err)
				require.Len(t, res.Levels, int(coo.NumRows))
				require.Equal(t, want, res.Levels)
			})
		}
	}
}

func TestChainRoundCount(t *testing.T) {
	// A 10-node chain converges in depth+1 rounds: one per level plus the
	// final round in which no unit changes.
	var edges [][2]uint32
	for v := uint32(0); v < 9; v++ {
		edges = append(edges, [2]uint32{v, v + 1})
	}
	coo := paddedCOO(10, 8, edges)

	eng := New(Options{Units: 8, Algorithm: types.BottomUp, Partition: types.ByDestination})
	res, err := eng.Run(coo)
	require.NoError(t, err)

	require.Equal(t, 10, res.Rounds)
	for v := uint32(0); v < 10; v++ {
		require.Equal(t, types.Level(v), res.Levels[v])
	}
}

func TestRootOnlyGraph(t *testing.T) {
	// No edges at all: the run converges after a single round and every
	// node stays at level 0.
	coo := paddedCOO(16, 8, nil)

	eng := New(Options{Units: 8, Algorithm: types.EdgeCentric, Partition: types.Grid2D})
	res, err := eng.Run(coo)
	require.NoError(t, err)

	require.Equal(t, 1, res.Rounds)
	for n, level := range res.Levels {
		require.Equal(t, types.Level(0), level, "node %d", n)
	}
}

func TestRunRejectsIndivisibleUnits(t *testing.T) {
	coo := paddedCOO(16, 8, [][2]uint32{{0, 1}})

	eng := New(Options{Units: 3, Algorithm: types.TopDown, Partition: types.BySource})
	_, err := eng.Run(coo)
	require.ErrorIs(t, err, partition.ErrUnitCount)
}

func TestResultWrite(t *testing.T) {
	coo := paddedCOO(4, 8, [][2]uint32{{0, 1}, {1, 3}})

	eng := New(Options{Units: 8, Algorithm: types.TopDown, Partition: types.BySource})
	res, err := eng.Run(coo)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Write(&buf))
	require.Equal(t, "node\tlevel\n0\t0\n1\t1\n3\t2\n", buf.String())
}
