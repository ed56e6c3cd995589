package partition

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

func TestPaddedNodeCount(t *testing.T) {
	for _, units := range []int{8, 16, 32, 40} {
		for _, raw := range []uint32{1, 5, 100, 256, 1000, 4096} {
			padded := PaddedNodeCount(raw, units)
			require.GreaterOrEqual(t, padded, raw)
			require.Zero(t, padded%uint32(units), "padded count must divide into %d chunks", units)
			require.Zero(t, padded/uint32(units)%AlignWords, "chunk size must be a multiple of %d", AlignWords)
		}
	}
}

func TestNearestFactors(t *testing.T) {
	cases := map[uint32][2]uint32{
		8:  {2, 4},
		16: {4, 4},
		32: {4, 8},
		36: {6, 6},
	}
	for n, want := range cases {
		rowDiv, colDiv := NearestFactors(n)
		require.Equal(t, want[0], rowDiv, "n=%d", n)
		require.Equal(t, want[1], colDiv, "n=%d", n)
		require.Equal(t, n, rowDiv*colDiv, "n=%d", n)
		require.LessOrEqual(t, rowDiv, colDiv, "n=%d", n)
	}
}

// randomCOO builds a deterministic pseudo-random square edge list over the
// padded dimension.
func randomCOO(dim uint32, numEdges int, seed int64) *sparse.COO {
	rng := rand.New(rand.NewSource(seed))
	coo := &sparse.COO{
		NumRows:  dim,
		NumCols:  dim,
		NumEdges: uint32(numEdges),
		RowIdxs:  make([]uint32, numEdges),
		ColIdxs:  make([]uint32, numEdges),
	}
	for i := 0; i < numEdges; i++ {
		coo.RowIdxs[i] = uint32(rng.Intn(int(dim)))
		coo.ColIdxs[i] = uint32(rng.Intn(int(dim)))
	}
	return coo
}

func sortedPairs(pairs [][2]uint32) [][2]uint32 {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

func TestSplitCompleteness(t *testing.T) {
	const units = 8
	dim := PaddedNodeCount(200, units)
	coo := randomCOO(dim, 600, 42)

	original := make([][2]uint32, 0, coo.NumEdges)
	for i := uint32(0); i < coo.NumEdges; i++ {
		original = append(original, [2]uint32{coo.RowIdxs[i], coo.ColIdxs[i]})
	}
	original = sortedPairs(original)

	for _, scheme := range []types.Partition{types.BySource, types.ByDestination, types.Grid2D} {
		plan, err := NewPlan(scheme, units, dim, dim)
		require.NoError(t, err, "scheme=%v", scheme)

		shards, err := Split(coo, plan)
		require.NoError(t, err, "scheme=%v", scheme)
		require.Len(t, shards, units)

		// Reassemble: apply the inverse offsets and collect all edges.
		var total uint32
		reassembled := make([][2]uint32, 0, coo.NumEdges)
		for s, shard := range shards {
			require.Equal(t, plan.ShardRows, shard.NumRows)
			require.Equal(t, plan.ShardCols, shard.NumCols)
			total += shard.NumEdges
			for i := uint32(0); i < shard.NumEdges; i++ {
				require.Less(t, shard.RowIdxs[i], shard.NumRows, "scheme=%v shard=%d", scheme, s)
				require.Less(t, shard.ColIdxs[i], shard.NumCols, "scheme=%v shard=%d", scheme, s)
				reassembled = append(reassembled, [2]uint32{
					shard.RowIdxs[i] + plan.RowOffset(s),
					shard.ColIdxs[i] + plan.ColOffset(s),
				})
			}
		}

		// Every edge in exactly one shard: counts and multisets both match.
		require.Equal(t, coo.NumEdges, total, "scheme=%v", scheme)
		require.Equal(t, original, sortedPairs(reassembled), "scheme=%v", scheme)
	}
}

func TestShardForMatchesOffsets(t *testing.T) {
	plan, err := NewPlan(types.Grid2D, 8, 256, 256)
	require.NoError(t, err)
	require.Equal(t, uint32(2), plan.RowDiv)
	require.Equal(t, uint32(4), plan.ColDiv)

	for _, edge := range [][2]uint32{{0, 0}, {127, 255}, {128, 0}, {255, 63}, {200, 200}} {
		s := plan.ShardFor(edge[0], edge[1])
		require.GreaterOrEqual(t, edge[0], plan.RowOffset(s))
		require.Less(t, edge[0], plan.RowOffset(s)+plan.ShardRows)
		require.GreaterOrEqual(t, edge[1], plan.ColOffset(s))
		require.Less(t, edge[1], plan.ColOffset(s)+plan.ShardCols)
	}
}

func TestNewPlanIndivisible(t *testing.T) {
	_, err := NewPlan(types.BySource, 8, 100, 100)
	require.ErrorIs(t, err, ErrUnitCount)
}
