package pim

import "github.com/TarekAS/bfs-pim/pkg/sparse"

// TopDown is the vertex-centric forward kernel: expand every current-
// frontier node's outgoing edges and collect unvisited neighbors into the
// next frontier. Levels are recorded in source-index space, labeling each
// node as it is expanded.
type TopDown struct {
	Adj *sparse.CSR
}

func (k *TopDown) Advance(m *Memory) error {
	m.absorb()

	changed := false
	for v := uint32(0); v < k.Adj.NumRows; v++ {
		if !Bit(m.CurrFrontier, v) {
			continue
		}
		m.NodeLevels[v] = m.Level
		for e := k.Adj.RowPtrs[v]; e < k.Adj.RowPtrs[v+1]; e++ {
			w := k.Adj.ColIdxs[e]
			if Bit(m.Visited, w) || Bit(m.NextFrontier, w) {
				continue
			}
			SetBit(m.NextFrontier, w)
			changed = true
		}
	}
	m.Changed = changed
	return nil
}
