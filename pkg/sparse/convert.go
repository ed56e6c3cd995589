package sparse

import (
	"errors"
	"fmt"
)

// ErrIndexRange reports a COO entry outside its declared dimensions. The
// partitioner never produces such input; hitting this is a caller bug.
var ErrIndexRange = errors.New("sparse: index out of declared dimension")

// CooToCSR converts an edge list to row-compressed form with a two-pass
// counting sort: histogram rows, prefix-sum into row pointers, then scatter
// the column indices. Entries within a row keep their COO order (stable).
// Runs in O(NumRows + NumEdges).
func CooToCSR(coo *COO) (*CSR, error) {
	csr := &CSR{
		NumRows:  coo.NumRows,
		NumCols:  coo.NumCols,
		NumEdges: coo.NumEdges,
		RowPtrs:  make([]uint32, coo.NumRows+1),
		ColIdxs:  make([]uint32, coo.NumEdges),
	}

	// Histogram row indices.
	for i := uint32(0); i < coo.NumEdges; i++ {
		rowIdx := coo.RowIdxs[i]
		if rowIdx >= coo.NumRows {
			return nil, fmt.Errorf("%w: row %d >= %d", ErrIndexRange, rowIdx, coo.NumRows)
		}
		if coo.ColIdxs[i] >= coo.NumCols {
			return nil, fmt.Errorf("%w: col %d >= %d", ErrIndexRange, coo.ColIdxs[i], coo.NumCols)
		}
		csr.RowPtrs[rowIdx]++
	}

	// Prefix-sum the counts into row pointers.
	sumBeforeNextRow := uint32(0)
	for rowIdx := uint32(0); rowIdx < csr.NumRows; rowIdx++ {
		sumBeforeRow := sumBeforeNextRow
		sumBeforeNextRow += csr.RowPtrs[rowIdx]
		csr.RowPtrs[rowIdx] = sumBeforeRow
	}
	csr.RowPtrs[csr.NumRows] = sumBeforeNextRow

	// Scatter the nonzeros, advancing each row's pointer as we fill it.
	for i := uint32(0); i < coo.NumEdges; i++ {
		rowIdx := coo.RowIdxs[i]
		nnzIdx := csr.RowPtrs[rowIdx]
		csr.RowPtrs[rowIdx]++
		csr.ColIdxs[nnzIdx] = coo.ColIdxs[i]
	}

	// Shift the pointers back down to undo the fill advance.
	for rowIdx := csr.NumRows; rowIdx > 0; rowIdx-- {
		csr.RowPtrs[rowIdx] = csr.RowPtrs[rowIdx-1]
	}
	csr.RowPtrs[0] = 0

	return csr, nil
}

// CooToCSC converts an edge list to column-compressed form by running
// CooToCSR on the transposed coordinates. Same complexity and stability as
// CooToCSR, transposed.
func CooToCSC(coo *COO) (*CSC, error) {
	csr, err := CooToCSR(coo.Transpose())
	if err != nil {
		return nil, err
	}
	return &CSC{
		NumRows:  csr.NumCols,
		NumCols:  csr.NumRows,
		NumEdges: csr.NumEdges,
		ColPtrs:  csr.RowPtrs,
		RowIdxs:  csr.ColIdxs,
	}, nil
}

// CSRToCoo expands a row-compressed matrix back into an edge list, in row
// order.
func CSRToCoo(csr *CSR) *COO {
	coo := &COO{
		NumRows:  csr.NumRows,
		NumCols:  csr.NumCols,
		NumEdges: csr.NumEdges,
		RowIdxs:  make([]uint32, csr.NumEdges),
		ColIdxs:  make([]uint32, csr.NumEdges),
	}
	for rowIdx := uint32(0); rowIdx < csr.NumRows; rowIdx++ {
		for i := csr.RowPtrs[rowIdx]; i < csr.RowPtrs[rowIdx+1]; i++ {
			coo.RowIdxs[i] = rowIdx
			coo.ColIdxs[i] = csr.ColIdxs[i]
		}
	}
	return coo
}

// CSCToCoo expands a column-compressed matrix back into an edge list, in
// column order.
func CSCToCoo(csc *CSC) *COO {
	coo := CSRToCoo(&CSR{
		NumRows:  csc.NumCols,
		NumCols:  csc.NumRows,
		NumEdges: csc.NumEdges,
		RowPtrs:  csc.ColPtrs,
		ColIdxs:  csc.RowIdxs,
	})
	return coo.Transpose()
}
