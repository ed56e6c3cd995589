package engine

import "github.com/TarekAS/bfs-pim/internal/types"

// collectLevels fetches every unit's level array, maps local indices back
// into the global node range by inverting the partitioner's offsets, and
// min-reduces overlapping contributions: the smallest non-zero level wins,
// and a zero from a unit that never labeled a node cannot erase another
// unit's finite level.
func (e *Engine) collectLevels() []types.Level {
	defer e.stats.phase(&e.stats.Fetch)()

	nodeLevels := make([]types.Level, e.totalNodes)
	for i := 0; i < e.fleet.Size(); i++ {
		u := e.fleet.Unit(i)
		offset := uint32(i) / e.levelDiv * e.lenNL % e.totalNodes
		for n := uint32(0); n < e.lenNL; n++ {
			level := u.Mem.NodeLevels[n]
			if level == 0 {
				continue
			}
			nReal := n + offset
			if nodeLevels[nReal] == 0 || level < nodeLevels[nReal] {
				nodeLevels[nReal] = level
			}
		}
	}
	return nodeLevels
}
