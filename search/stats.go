package search

import "sync/atomic"

type counters struct {
	nodes      atomic.Uint64
	leaves     atomic.Uint64
	terminals  atomic.Uint64
	researches atomic.Uint64
	cutoffs    atomic.Uint64
}

// Stats counts the work done by one search.
type Stats struct {
	Nodes      uint64 // internal nodes expanded, root included
	Leaves     uint64 // evaluations at max depth
	Terminals  uint64 // evaluations of positions with no move to search
	Researches uint64
	Cutoffs    uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Nodes:      c.nodes.Load(),
		Leaves:     c.leaves.Load(),
		Terminals:  c.terminals.Load(),
		Researches: c.researches.Load(),
		Cutoffs:    c.cutoffs.Load(),
	}
}
