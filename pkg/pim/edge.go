package pim

import "github.com/TarekAS/bfs-pim/pkg/sparse"

// EdgeCentric scans the shard's raw edge list every round: an edge whose
// source is in the current frontier discovers its destination. No
// compression; the kernel trades redundant scanning for a uniform access
// pattern. Levels are recorded in destination-index space at discovery.
type EdgeCentric struct {
	Adj *sparse.COO
}

func (k *EdgeCentric) Advance(m *Memory) error {
	m.absorb()

	changed := false
	for i := uint32(0); i < k.Adj.NumEdges; i++ {
		if !Bit(m.CurrFrontier, k.Adj.RowIdxs[i]) {
			continue
		}
		c := k.Adj.ColIdxs[i]
		if Bit(m.Visited, c) || Bit(m.NextFrontier, c) {
			continue
		}
		SetBit(m.NextFrontier, c)
		m.NodeLevels[c] = m.Level + 1
		changed = true
	}
	m.Changed = changed
	return nil
}
