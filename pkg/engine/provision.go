package engine

import (
	"fmt"

	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/pkg/pim"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

// provision converts each shard to the adjacency format its kernel needs,
// sizes the aligned unit buffers, seeds the root bit and builds the fleet.
func (e *Engine) provision(shards []*sparse.COO) error {
	defer e.stats.phase(&e.stats.Populate)()

	numNodes := shards[0].NumRows     // per-shard source range
	numNeighbors := shards[0].NumCols // per-shard destination range

	e.lenCF = numNodes / 32
	e.lenNF = numNeighbors / 32

	// The reconstructed level range and the shard-to-range mapping depend
	// on both topology and traversal direction: top-down labels nodes in
	// source space, bottom-up and edge-centric in destination space.
	switch e.plan.Scheme {
	case types.BySource:
		e.totalNodes = numNeighbors
	case types.ByDestination:
		e.totalNodes = numNodes
	default:
		e.totalNodes = numNodes * e.plan.RowDiv
	}
	if e.opts.Algorithm == types.TopDown {
		e.lenNL = numNodes
		e.levelDiv = e.plan.ColDiv
	} else {
		e.lenNL = numNeighbors
		e.levelDiv = 1
	}

	e.log.Info().Msg("populating unit memory")

	units := make([]*pim.Unit, e.plan.Units)
	for i := range units {
		kernel, err := buildKernel(e.opts.Algorithm, shards[i])
		if err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}

		mem := pim.Memory{
			CurrFrontier: make([]uint32, pim.RoundUpWords(e.lenCF)),
			NextFrontier: make([]uint32, pim.RoundUpWords(e.lenNF)),
			Visited:      make([]uint32, pim.RoundUpWords(e.lenNF)),
			NodeLevels:   make([]uint32, pim.RoundUpWords(e.lenNL)),
		}

		// Seed the root (global node 0) into the current frontier of every
		// unit covering its row range and into the next frontier of every
		// unit covering its column range: the kernels fold the next
		// frontier into the visited set before expanding, so the root can
		// never be rediscovered.
		if uint32(i) < e.plan.ColDiv {
			pim.SetBit(mem.CurrFrontier, 0)
		}
		if uint32(i)%e.plan.ColDiv == 0 {
			pim.SetBit(mem.NextFrontier, 0)
		}

		units[i] = &pim.Unit{ID: i, Mem: mem, Kernel: kernel}
	}

	e.fleet = pim.NewFleet(units)
	return nil
}

// buildKernel converts a shard into the adjacency structure the selected
// traversal variant consumes and wraps it in the matching kernel.
func buildKernel(alg types.Algorithm, shard *sparse.COO) (pim.Kernel, error) {
	switch alg {
	case types.TopDown:
		csr, err := sparse.CooToCSR(shard)
		if err != nil {
			return nil, err
		}
		return &pim.TopDown{Adj: csr}, nil
	case types.BottomUp:
		csc, err := sparse.CooToCSC(shard)
		if err != nil {
			return nil, err
		}
		return &pim.BottomUp{Adj: csc}, nil
	case types.EdgeCentric:
		return &pim.EdgeCentric{Adj: shard}, nil
	}
	return nil, fmt.Errorf("unknown algorithm %v", alg)
}
