package engine

import (
	"math"
	"sort"

	"github.com/jberndt/longwinter/internal/content"
)

// Resources is the bounded inventory ledger. Every balance is clamped to
// its per-resource cap on credit; debits either succeed in full or leave
// the ledger untouched. Caps are always recomputed from the catalog base
// values so repeated rebuilds never compound.
type Resources struct {
	amounts  map[string]int
	caps     map[string]int
	baseCaps map[string]int
}

// NewResources seeds a ledger from the resource catalog.
func NewResources(defs []content.ResourceDef) *Resources {
	r := &Resources{
		amounts:  make(map[string]int, len(defs)),
		caps:     make(map[string]int, len(defs)),
		baseCaps: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		r.amounts[d.ID] = d.Initial
		r.caps[d.ID] = d.Cap
		r.baseCaps[d.ID] = d.Cap
	}
	return r
}

// Known reports whether the ledger tracks the given resource id.
func (r *Resources) Known(id string) bool {
	_, ok := r.amounts[id]
	return ok
}

// Amount returns the current balance, zero for unknown ids.
func (r *Resources) Amount(id string) int { return r.amounts[id] }

// Cap returns the current cap, zero for unknown ids.
func (r *Resources) Cap(id string) int { return r.caps[id] }

// Add credits amount, clamping at the cap. Returns false for unknown ids
// or non-positive amounts.
func (r *Resources) Add(id string, amount int) bool {
	if amount <= 0 {
		return false
	}
	cur, ok := r.amounts[id]
	if !ok {
		return false
	}
	next := cur + amount
	if cap := r.caps[id]; next > cap {
		next = cap
	}
	r.amounts[id] = next
	return true
}

// Consume debits amount if the full amount is available. Partial debits
// never happen.
func (r *Resources) Consume(id string, amount int) bool {
	if amount <= 0 {
		return false
	}
	cur, ok := r.amounts[id]
	if !ok || cur < amount {
		return false
	}
	r.amounts[id] = cur - amount
	return true
}

// Drain debits up to amount, stopping at zero. It returns how much was
// actually taken. Used for survival upkeep, where running dry is a state
// the hourly update needs to observe rather than an error.
func (r *Resources) Drain(id string, amount int) int {
	cur, ok := r.amounts[id]
	if !ok || amount <= 0 {
		return 0
	}
	take := amount
	if take > cur {
		take = cur
	}
	r.amounts[id] = cur - take
	return take
}

// CanAfford reports whether every cost in the map is covered.
func (r *Resources) CanAfford(costs map[string]int) bool {
	for id, n := range costs {
		if n <= 0 {
			continue
		}
		if r.amounts[id] < n {
			return false
		}
	}
	return true
}

// ConsumeAll debits a full cost map transactionally: either every debit
// succeeds or the ledger is left unchanged.
func (r *Resources) ConsumeAll(costs map[string]int) bool {
	if !r.CanAfford(costs) {
		return false
	}
	for id, n := range costs {
		if n > 0 {
			r.amounts[id] -= n
		}
	}
	return true
}

// RecomputeCaps rebuilds every cap from its catalog base: the base is
// multiplied by survivalMult for each earned survival milestone and by
// every storage multiplier in storageMults, then clamped to ceiling.
// Balances are never reduced when a cap shrinks.
func (r *Resources) RecomputeCaps(milestones int, survivalMult float64, storageMults []float64, ceiling int) {
	for id, base := range r.baseCaps {
		cap := float64(base)
		for i := 0; i < milestones; i++ {
			cap *= survivalMult
		}
		for _, m := range storageMults {
			if m > 0 {
				cap *= m
			}
		}
		c := int(math.Round(cap))
		if c > ceiling {
			c = ceiling
		}
		if c < base {
			c = base
		}
		r.caps[id] = c
	}
}

// Snapshot returns copies of the balances and caps.
func (r *Resources) Snapshot() (amounts, caps map[string]int) {
	amounts = make(map[string]int, len(r.amounts))
	caps = make(map[string]int, len(r.caps))
	for id, n := range r.amounts {
		amounts[id] = n
	}
	for id, n := range r.caps {
		caps[id] = n
	}
	return amounts, caps
}

// Restore overwrites balances from a saved state, dropping ids the
// catalog no longer knows and clamping each balance to its cap. Caps are
// not taken from the save; the caller recomputes them.
func (r *Resources) Restore(amounts map[string]int) {
	for id := range r.amounts {
		n, ok := amounts[id]
		if !ok || n < 0 {
			n = 0
		}
		if cap := r.caps[id]; n > cap {
			n = cap
		}
		r.amounts[id] = n
	}
}

// IDs returns the tracked resource ids in stable order.
func (r *Resources) IDs() []string {
	ids := make([]string, 0, len(r.amounts))
	for id := range r.amounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
