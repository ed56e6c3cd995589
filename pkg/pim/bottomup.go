package pim

import "github.com/TarekAS/bfs-pim/pkg/sparse"

// BottomUp is the vertex-centric reverse kernel: every unvisited node scans
// its incoming edges and joins the next frontier as soon as one parent is
// in the current frontier. Levels are recorded in destination-index space
// at discovery time.
type BottomUp struct {
	Adj *sparse.CSC
}

func (k *BottomUp) Advance(m *Memory) error {
	m.absorb()

	changed := false
	for c := uint32(0); c < k.Adj.NumCols; c++ {
		if Bit(m.Visited, c) || Bit(m.NextFrontier, c) {
			continue
		}
		for e := k.Adj.ColPtrs[c]; e < k.Adj.ColPtrs[c+1]; e++ {
			if Bit(m.CurrFrontier, k.Adj.RowIdxs[e]) {
				SetBit(m.NextFrontier, c)
				m.NodeLevels[c] = m.Level + 1
				changed = true
				break
			}
		}
	}
	m.Changed = changed
	return nil
}
