// Package graphio reads the plain-text edge-list input format and writes
// the tab-separated level output.
package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TarekAS/bfs-pim/internal/util"
	"github.com/TarekAS/bfs-pim/pkg/partition"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

var log = util.New("graphio")

// ErrBadHeader reports a first line that is not "NUM_NODES NUM_EDGES".
var ErrBadHeader = errors.New("graphio: first line must be of the form: NUM_NODES NUM_EDGES")

// ErrBadLine reports a data line that is not "SRC DST" (extra trailing
// fields are ignored).
var ErrBadLine = errors.New("graphio: lines must be of the form: SRC DST")

// ErrIndexRange reports a node index outside the declared node count after
// zero-index re-basing.
var ErrIndexRange = errors.New("graphio: node index out of range")

// LoadEdgeList reads an edge list from path and returns it as a square COO
// whose node dimension is padded so it divides evenly into units chunks of
// whole alignment blocks (see partition.PaddedNodeCount). Indices in the
// file may be non-zero-based: the first data row's source value is taken as
// the zero-index offset for every row; re-based indices must stay inside the
// declared node count.
func LoadEdgeList(path string, units int) (*sparse.COO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}
	defer f.Close()

	log.Info().Str("file", path).Msg("loading adjacency-list formatted graph")

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !sc.Scan() {
		return nil, ErrBadHeader
	}
	header := strings.Fields(sc.Text())
	if len(header) != 2 {
		return nil, ErrBadHeader
	}
	numNodes, err1 := parseIndex(header[0])
	numEdges, err2 := parseIndex(header[1])
	if err1 != nil || err2 != nil {
		return nil, ErrBadHeader
	}

	coo := &sparse.COO{
		NumEdges: numEdges,
		RowIdxs:  make([]uint32, numEdges),
		ColIdxs:  make([]uint32, numEdges),
	}

	// Pad the number of nodes to guarantee divisibility by units and then
	// by the alignment block.
	padded := partition.PaddedNodeCount(numNodes, units)
	if padded != numNodes {
		log.Warn().Uint32("extra", padded-numNodes).Msg("padding number of nodes")
	}
	coo.NumRows = padded
	coo.NumCols = padded

	log.Info().Uint32("nodes", padded).Uint32("edges", numEdges).Msg("graph dimensions")

	var rowOffset uint32
	for i := uint32(0); i < numEdges; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: could not read line %d", ErrBadLine, i+1)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: could not read line %d", ErrBadLine, i+1)
		}
		rowIdx, err1 := parseIndex(fields[0])
		colIdx, err2 := parseIndex(fields[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: could not read line %d", ErrBadLine, i+1)
		}
		if i == 0 {
			rowOffset = rowIdx // guarantee 0-indexed COO
		}
		if rowIdx < rowOffset || colIdx < rowOffset {
			return nil, fmt.Errorf("%w: line %d precedes the zero-index offset %d", ErrIndexRange, i+1, rowOffset)
		}
		rowIdx -= rowOffset
		colIdx -= rowOffset
		if rowIdx >= numNodes || colIdx >= numNodes {
			return nil, fmt.Errorf("%w: line %d references a node beyond the declared %d", ErrIndexRange, i+1, numNodes)
		}
		coo.RowIdxs[i] = rowIdx
		coo.ColIdxs[i] = colIdx
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("graphio: %w", err)
	}

	return coo, nil
}

func parseIndex(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// WriteLevels writes the "node\tlevel" header and one line per reached
// node in ascending node order. Node 0 is always printed (the root is level
// 0); any other node at level 0 is unreached or padding and is suppressed.
func WriteLevels(w io.Writer, levels []uint32) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "node\tlevel\n"); err != nil {
		return err
	}
	for node, level := range levels {
		if node != 0 && level == 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d\t%d\n", node, level); err != nil {
			return err
		}
	}
	return bw.Flush()
}
