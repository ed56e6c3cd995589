// Package engine drives the partitioned level-synchronous BFS: it
// provisions one compute unit per shard, runs the topology-specific round
// protocol until global convergence, and reconstructs the per-node levels.
package engine

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/TarekAS/bfs-pim/internal/types"
	"github.com/TarekAS/bfs-pim/internal/util"
	"github.com/TarekAS/bfs-pim/pkg/graphio"
	"github.com/TarekAS/bfs-pim/pkg/partition"
	"github.com/TarekAS/bfs-pim/pkg/pim"
	"github.com/TarekAS/bfs-pim/pkg/sparse"
)

// Options selects the traversal variant, the partition topology and the
// fleet size for one run.
type Options struct {
	Units     int
	Algorithm types.Algorithm
	Partition types.Partition
	Timing    bool
}

// Engine owns all state scoped to one BFS run: the partition plan, the
// fleet, the host-side metadata and the phase timers. It is not reusable
// across runs.
type Engine struct {
	opts  Options
	log   zerolog.Logger
	stats *Stats

	plan  *partition.Plan
	fleet *pim.Fleet

	// Word lengths of the per-unit frontier buffers and the entry length
	// of the level arrays, before alignment padding.
	lenCF uint32
	lenNF uint32
	lenNL uint32

	// totalNodes spans the global node range the reconstructed levels
	// cover; levelDiv is the shard-index divisor mapping units onto it.
	totalNodes uint32
	levelDiv   uint32
}

// New creates an engine for one run with the given options.
func New(opts Options) *Engine {
	return &Engine{
		opts:  opts,
		log:   util.New("engine"),
		stats: &Stats{enabled: opts.Timing},
	}
}

// Run partitions the (padded) edge list, provisions the fleet and iterates
// rounds until convergence. The root is global node 0.
func (e *Engine) Run(coo *sparse.COO) (*Result, error) {
	plan, err := partition.NewPlan(e.opts.Partition, e.opts.Units, coo.NumRows, coo.NumCols)
	if err != nil {
		return nil, err
	}
	e.plan = plan

	e.log.Info().
		Int("units", plan.Units).
		Stringer("algorithm", e.opts.Algorithm).
		Stringer("partitioning", plan.Scheme).
		Msg("partitioning adjacency matrix")

	shards, err := partition.Split(coo, plan)
	if err != nil {
		return nil, err
	}

	if err := e.provision(shards); err != nil {
		return nil, fmt.Errorf("provisioning failed: %w", err)
	}

	e.log.Info().Msg("starting BFS")
	switch plan.Scheme {
	case types.BySource:
		err = e.runRow()
	case types.ByDestination:
		err = e.runCol()
	default:
		err = e.run2D()
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Levels: e.collectLevels(), Rounds: e.stats.Rounds}
	e.log.Info().Int("rounds", res.Rounds).Msg("converged")
	e.stats.report(e.log)
	return res, nil
}

// Result is the reconstructed outcome of one run.
type Result struct {
	// Levels maps every global node ID to its BFS depth. Zero means root
	// for node 0 and unreached for every other node (padding included).
	Levels []types.Level

	// Rounds is the number of barrier rounds until convergence.
	Rounds int
}

// Write emits the result in the tab-separated output format, suppressing
// unreached nodes.
func (r *Result) Write(w io.Writer) error {
	return graphio.WriteLevels(w, r.Levels)
}
