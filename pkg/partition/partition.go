// Package partition splits the global adjacency matrix into per-unit shards
// under three schemes: 1D by source range, 1D by destination range, or a 2D
// grid over both. It also owns the padding arithmetic that keeps shard
// dimensions divisible by the unit count and the alignment block.
package partition

import (
	"errors"
	"fmt"

	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

// AlignWords is the alignment block, in nodes, every per-unit chunk is
// padded to. Unit kernels process buffers in blocks of this size, and one
// frontier word covers exactly this many nodes.
const AlignWords = 32

// ErrUnitCount reports a unit count the matrix dimensions cannot be evenly
// divided by.
var ErrUnitCount = errors.New("partition: unit count does not divide matrix dimensions")

// PaddedNodeCount returns numNodes rounded up so that it divides evenly
// into units chunks whose size is a multiple of AlignWords. Padding adds
// nodes, never edges; padded nodes have no adjacency.
func PaddedNodeCount(numNodes uint32, units int) uint32 {
	n := uint32(units)
	if numNodes%n != 0 {
		numNodes += n - numNodes%n
	}
	chunk := numNodes / n
	if chunk%AlignWords != 0 {
		chunk += AlignWords - chunk%AlignWords
		numNodes = chunk * n
	}
	return numNodes
}

// NearestFactors returns the pair of factors of n closest to its square
// root, smaller factor first. Used to shape the 2D grid.
func NearestFactors(n uint32) (uint32, uint32) {
	f := uint32(1)
	for f*f <= n {
		f++
	}
	f--
	for n%f != 0 {
		f--
	}
	return f, n / f
}

// Plan describes one partitioning of a NumRows x NumCols matrix across
// Units shards. Shard p covers global rows
// [RowOffset(p), RowOffset(p)+ShardRows) and the analogous column range;
// shards are indexed row-major over the RowDiv x ColDiv grid.
type Plan struct {
	Scheme    types.Partition
	Units     int
	RowDiv    uint32
	ColDiv    uint32
	ShardRows uint32
	ShardCols uint32
}

// NewPlan computes the shard geometry for the given scheme. Dimensions must
// already be padded (PaddedNodeCount) so they divide exactly.
func NewPlan(scheme types.Partition, units int, numRows, numCols uint32) (*Plan, error) {
	p := &Plan{Scheme: scheme, Units: units, RowDiv: 1, ColDiv: 1}

	n := uint32(units)
	switch scheme {
	case types.BySource:
		p.RowDiv = n
	case types.ByDestination:
		p.ColDiv = n
	case types.Grid2D:
		p.RowDiv, p.ColDiv = NearestFactors(n)
	default:
		return nil, fmt.Errorf("partition: unknown scheme %v", scheme)
	}

	if numRows%p.RowDiv != 0 || numCols%p.ColDiv != 0 {
		return nil, fmt.Errorf("%w: %dx%d across %dx%d", ErrUnitCount, numRows, numCols, p.RowDiv, p.ColDiv)
	}
	p.ShardRows = numRows / p.RowDiv
	p.ShardCols = numCols / p.ColDiv
	return p, nil
}

// ShardFor returns the shard index owning the edge (row, col).
func (p *Plan) ShardFor(row, col uint32) int {
	pRow := row / p.ShardRows % p.RowDiv
	pCol := col / p.ShardCols % p.ColDiv
	return int(pRow*p.ColDiv + pCol)
}

// RowOffset returns the global row index of shard's first local row.
func (p *Plan) RowOffset(shard int) uint32 {
	return uint32(shard) / p.ColDiv * p.ShardRows
}

// ColOffset returns the global column index of shard's first local column.
func (p *Plan) ColOffset(shard int) uint32 {
	return uint32(shard) % p.ColDiv * p.ShardCols
}

// Split scatters the edge list into one re-based COO per shard. Two passes:
// the first counts edges per shard so buffers are sized exactly, the second
// scatters each edge and subtracts its shard's offsets. Every edge lands in
// exactly one shard.
func Split(coo *sparse.COO, p *Plan) ([]*sparse.COO, error) {
	if coo.NumRows != p.ShardRows*p.RowDiv || coo.NumCols != p.ShardCols*p.ColDiv {
		return nil, fmt.Errorf("%w: matrix is %dx%d, plan wants %dx%d",
			ErrUnitCount, coo.NumRows, coo.NumCols, p.ShardRows*p.RowDiv, p.ShardCols*p.ColDiv)
	}

	counts := make([]uint32, p.Units)
	for i := uint32(0); i < coo.NumEdges; i++ {
		counts[p.ShardFor(coo.RowIdxs[i], coo.ColIdxs[i])]++
	}

	shards := make([]*sparse.COO, p.Units)
	for s := range shards {
		shards[s] = &sparse.COO{
			NumRows: p.ShardRows,
			NumCols: p.ShardCols,
			RowIdxs: make([]uint32, 0, counts[s]),
			ColIdxs: make([]uint32, 0, counts[s]),
		}
	}

	for i := uint32(0); i < coo.NumEdges; i++ {
		rowIdx, colIdx := coo.RowIdxs[i], coo.ColIdxs[i]
		s := p.ShardFor(rowIdx, colIdx)
		shard := shards[s]
		shard.RowIdxs = append(shard.RowIdxs, rowIdx-p.RowOffset(s))
		shard.ColIdxs = append(shard.ColIdxs, colIdx-p.ColOffset(s))
		shard.NumEdges++
	}

	return shards, nil
}
