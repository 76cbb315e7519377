package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Strategy selects the pruning policy layered on the shared traversal.
type Strategy int

const (
	// Negamax walks the whole tree; it is the reference for the others.
	Negamax Strategy = iota
	// Scout probes later siblings with a null window and re-searches a
	// probe that lands inside the window, except at the last internal ply.
	Scout
	// PVS probes like Scout and re-searches with the full window at every
	// internal ply.
	PVS
)

var strategyNames = map[string]Strategy{
	"negamax":   Negamax,
	"scout":     Scout,
	"negascout": Scout,
	"pvs":       PVS,
	"vps":       PVS,
}

func (s Strategy) String() string {
	switch s {
	case Negamax:
		return "negamax"
	case Scout:
		return "scout"
	case PVS:
		return "pvs"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) valid() bool {
	return s >= Negamax && s <= PVS
}

// prunes reports whether the strategy narrows windows and cuts off.
func (s Strategy) prunes() bool {
	return s != Negamax
}

// ParseStrategy maps a user-supplied name to a Strategy. The empty name
// means Negamax.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Negamax, nil
	}
	if s, ok := strategyNames[name]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w %q; recognized: %s", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
}

// StrategyNames lists every accepted name, aliases included.
func StrategyNames() []string {
	names := lo.Keys(strategyNames)
	sort.Strings(names)
	return names
}
