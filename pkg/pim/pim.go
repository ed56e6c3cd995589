// Package pim emulates the fleet of parallel compute units the engine
// drives: each unit owns a private memory region (adjacency structure,
// frontier bitsets, visited set, level array) and runs one traversal kernel
// per round behind a hard barrier. The host only touches unit memory
// between rounds.
package pim

// BlockWords is the number of 32-bit words a unit kernel processes per
// block; every unit buffer length is rounded up to a multiple of it.
const BlockWords = 32

// RoundUpWords rounds n up to the next multiple of BlockWords.
func RoundUpWords(n uint32) uint32 {
	return (n + BlockWords - 1) / BlockWords * BlockWords
}

// Memory is one unit's private working memory. Frontiers and the visited
// set are bit-per-node arrays packed into 32-bit words; NodeLevels holds
// one level value per node. The host mutates CurrFrontier, NextFrontier and
// Level between rounds; the kernel mutates everything else.
type Memory struct {
	CurrFrontier []uint32
	NextFrontier []uint32
	Visited      []uint32
	NodeLevels   []uint32
	Level        uint32
	Changed      bool
}

// absorb folds the next frontier into the visited set and clears it. Run at
// the start of every round: whatever the host left in the next frontier
// (the unit's own discoveries plus any broadcast from other units) becomes
// visited knowledge before expansion.
func (m *Memory) absorb() {
	for i := range m.NextFrontier {
		m.Visited[i] |= m.NextFrontier[i]
		m.NextFrontier[i] = 0
	}
}

// Kernel is the compute-unit collaborator contract: given the unit's
// memory, advance one BFS round. Implementations must be re-invocable every
// round with only CurrFrontier, NextFrontier and Level mutated between
// invocations, and must set Changed iff they set at least one new
// next-frontier bit.
type Kernel interface {
	Advance(m *Memory) error
}

// SetBit sets bit idx in a packed word array.
func SetBit(words []uint32, idx uint32) {
	words[idx/32] |= 1 << (idx % 32)
}

// Bit reports bit idx of a packed word array.
func Bit(words []uint32, idx uint32) bool {
	return words[idx/32]&(1<<(idx%32)) != 0
}
