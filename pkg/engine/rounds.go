package engine

// The three round loops below are the topology-specific halves of the
// level-synchronous protocol. Per round: launch every kernel behind one
// barrier, read the per-unit changed flags, fetch only the next frontiers
// that changed, aggregate them according to the partition topology, then
// broadcast the new current frontiers and the advanced level counter. The
// run converges when no unit changed its next frontier.

// runRow drives the 1D by-source topology. Every unit spans the full
// destination range, so the fetched next frontiers are merged with a
// bitwise OR into one global frontier, which is broadcast whole into every
// unit's next frontier and re-split by source range into the current
// frontiers.
func (e *Engine) runRow() error {
	lenCF, lenNF := e.lenCF, e.lenNF
	units := uint32(e.fleet.Size())

	frontier := make([]uint32, lenNF)
	nfTmp := make([]uint32, units*lenNF)

	level := uint32(0)
	for {
		if err := e.launch(); err != nil {
			return err
		}

		// Fetch next-frontiers of units that changed.
		done := true
		stopComm := e.stats.phase(&e.stats.Comm)
		for i := uint32(0); i < units; i++ {
			u := e.fleet.Unit(int(i))
			if u.Mem.Changed {
				copy(nfTmp[i*lenNF:(i+1)*lenNF], u.Mem.NextFrontier)
				done = false
			}
		}
		stopComm()

		// Union next-frontiers of the units that changed; the other slabs
		// were never written this round.
		stopAggr := e.stats.phase(&e.stats.Aggregate)
		for d := uint32(0); d < units; d++ {
			if !e.fleet.Unit(int(d)).Mem.Changed {
				continue
			}
			for c := uint32(0); c < lenNF; c++ {
				frontier[c] |= nfTmp[d*lenNF+c]
			}
		}
		stopAggr()

		if done {
			return nil
		}

		// Update level, next frontiers and current frontiers.
		level++
		stopComm = e.stats.phase(&e.stats.Comm)
		e.fleet.SetLevel(level)
		for i := uint32(0); i < units; i++ {
			u := e.fleet.Unit(int(i))
			copy(u.Mem.NextFrontier, frontier)
			copy(u.Mem.CurrFrontier[:lenCF], frontier[i*lenCF:(i+1)*lenCF])
		}
		stopComm()

		clear(frontier)
		clear(nfTmp)
	}
}

// runCol drives the 1D by-destination topology. Units own disjoint
// destination ranges, so changed next frontiers are concatenated, not
// merged, and the concatenation becomes every unit's full-range current
// frontier. Next frontiers are left in place; each kernel folds its own
// into its visited set at the next round.
func (e *Engine) runCol() error {
	lenCF, lenNF := e.lenCF, e.lenNF
	units := uint32(e.fleet.Size())

	frontier := make([]uint32, lenCF)

	level := uint32(0)
	for {
		if err := e.launch(); err != nil {
			return err
		}

		// Concatenate changed next-frontiers by destination range.
		done := true
		stopComm := e.stats.phase(&e.stats.Comm)
		for i := uint32(0); i < units; i++ {
			u := e.fleet.Unit(int(i))
			if u.Mem.Changed {
				copy(frontier[i*lenNF:(i+1)*lenNF], u.Mem.NextFrontier)
				done = false
			}
		}
		stopComm()

		if done {
			return nil
		}

		// Update level and current frontiers.
		level++
		stopComm = e.stats.phase(&e.stats.Comm)
		e.fleet.SetLevel(level)
		for i := uint32(0); i < units; i++ {
			copy(e.fleet.Unit(int(i)).Mem.CurrFrontier[:lenCF], frontier)
		}
		stopComm()

		clear(frontier)
	}
}

// run2D drives the grid topology. Next frontiers of units in the same grid
// column land in the same destination-space segment (OR-merged across grid
// rows); each unit then receives its grid column's segment as the next-
// frontier seed and its grid row's segment as the current frontier. The
// loop short-circuits before any aggregation once no unit changed.
func (e *Engine) run2D() error {
	lenCF, lenNF := e.lenCF, e.lenNF
	colDiv := e.plan.ColDiv
	lenFrontier := e.totalNodes / 32
	units := uint32(e.fleet.Size())

	frontier := make([]uint32, lenFrontier)
	nfTmp := make([]uint32, units*lenNF)

	level := uint32(0)
	for {
		if err := e.launch(); err != nil {
			return err
		}

		// Fetch next-frontiers and count updated units.
		numUpdated := 0
		stopComm := e.stats.phase(&e.stats.Comm)
		for i := uint32(0); i < units; i++ {
			u := e.fleet.Unit(int(i))
			if u.Mem.Changed {
				copy(nfTmp[i*lenNF:(i+1)*lenNF], u.Mem.NextFrontier)
				numUpdated++
			}
		}
		stopComm()
		if numUpdated == 0 {
			return nil
		}

		// Concatenate by grid column, union across grid rows.
		stopAggr := e.stats.phase(&e.stats.Aggregate)
		for i := uint32(0); i < units; i++ {
			if !e.fleet.Unit(int(i)).Mem.Changed {
				continue
			}
			base := i * lenNF % lenFrontier
			for c := uint32(0); c < lenNF; c++ {
				frontier[base+c] |= nfTmp[i*lenNF+c]
			}
		}
		stopAggr()

		// Update level, next frontiers and current frontiers.
		level++
		stopComm = e.stats.phase(&e.stats.Comm)
		e.fleet.SetLevel(level)
		for i := uint32(0); i < units; i++ {
			u := e.fleet.Unit(int(i))
			copy(u.Mem.NextFrontier, frontier[i*lenNF%lenFrontier:][:lenNF])
			copy(u.Mem.CurrFrontier[:lenCF], frontier[i/colDiv*lenCF:][:lenCF])
		}
		stopComm()

		clear(frontier)
		clear(nfTmp)
	}
}

// launch runs one barrier-synchronized compute step.
func (e *Engine) launch() error {
	defer e.stats.phase(&e.stats.Compute)()
	e.stats.Rounds++
	return e.fleet.Launch()
}
