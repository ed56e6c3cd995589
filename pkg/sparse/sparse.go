// Package sparse holds the three adjacency-matrix layouts the engine moves
// between: COO (edge list), CSR (outgoing adjacency) and CSC (incoming
// adjacency), plus the conversions connecting them.
package sparse

// COO is an unordered edge list: entry i is the edge
// (RowIdxs[i], ColIdxs[i]). Rows are source nodes, columns are
// destination nodes. All indices must be below the declared dimensions.
type COO struct {
	NumRows  uint32
	NumCols  uint32
	NumEdges uint32
	RowIdxs  []uint32
	ColIdxs  []uint32
}

// CSR is the row-compressed outgoing-adjacency view. Row r's neighbors are
// ColIdxs[RowPtrs[r]:RowPtrs[r+1]]. RowPtrs is monotonic with
// RowPtrs[0] == 0 and RowPtrs[NumRows] == NumEdges.
type CSR struct {
	NumRows  uint32
	NumCols  uint32
	NumEdges uint32
	RowPtrs  []uint32
	ColIdxs  []uint32
}

// CSC is the column-compressed incoming-adjacency view: structurally a CSR
// of the transposed matrix. Column c's in-neighbors are
// RowIdxs[ColPtrs[c]:ColPtrs[c+1]].
type CSC struct {
	NumRows  uint32
	NumCols  uint32
	NumEdges uint32
	ColPtrs  []uint32
	RowIdxs  []uint32
}

// Transpose returns the COO of the transposed matrix. The index slices are
// shared with the receiver, not copied.
func (c *COO) Transpose() *COO {
	return &COO{
		NumRows:  c.NumCols,
		NumCols:  c.NumRows,
		NumEdges: c.NumEdges,
		RowIdxs:  c.ColIdxs,
		ColIdxs:  c.RowIdxs,
	}
}
