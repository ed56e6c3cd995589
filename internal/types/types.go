package types

import "fmt"

// NodeID indexes a node in the global (padded) matrix dimension.
type NodeID = uint32

// Level is the BFS depth assigned to a node. Zero means "root" for node 0
// and "unreached" for every other node.
type Level = uint32

// Algorithm selects the per-unit traversal kernel.
type Algorithm int

const (
	TopDown     Algorithm = iota // vertex-centric, forward edges (CSR)
	BottomUp                     // vertex-centric, reverse edges (CSC)
	EdgeCentric                  // edge-centric, raw edge list (COO)
)

// ParseAlgorithm maps the -a flag value to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "top":
		return TopDown, nil
	case "bot":
		return BottomUp, nil
	case "edge":
		return EdgeCentric, nil
	}
	return 0, fmt.Errorf("unknown algorithm %q (supported: top | bot | edge)", s)
}

func (a Algorithm) String() string {
	switch a {
	case TopDown:
		return "top"
	case BottomUp:
		return "bot"
	case EdgeCentric:
		return "edge"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// DefaultPartition returns the partitioning scheme used when -p is not set.
func (a Algorithm) DefaultPartition() Partition {
	switch a {
	case BottomUp:
		return ByDestination
	case EdgeCentric:
		return Grid2D
	default:
		return BySource
	}
}

// Partition selects how the adjacency matrix is split across units.
type Partition int

const (
	BySource      Partition = iota // 1D over rows (source nodes)
	ByDestination                  // 1D over columns (destination nodes)
	Grid2D                         // 2D grid over both dimensions
)

// ParsePartition maps the -p flag value to a Partition.
func ParsePartition(s string) (Partition, error) {
	switch s {
	case "row":
		return BySource, nil
	case "col":
		return ByDestination, nil
	case "2d":
		return Grid2D, nil
	}
	return 0, fmt.Errorf("unknown partitioning %q (supported: row | col | 2d)", s)
}

func (p Partition) String() string {
	switch p {
	case BySource:
		return "row"
	case ByDestination:
		return "col"
	case Grid2D:
		return "2d"
	}
	return fmt.Sprintf("Partition(%d)", int(p))
}
