package mana

// CostLedger tracks the unpaid part of a mana cost as counts per shard tag.
// Convoke and improvise deduct from it one shard at a time and refund on deselection.
type CostLedger struct {
	order     []Shard // tags in first-seen order
	remaining map[Shard]int
	paid      map[Shard]int
	total     int
}

// NewCostLedger creates a ledger for cost with X fixed at xValue. Each {X}
// symbol adds xValue generic shards.
func NewCostLedger(cost *ManaCost, xValue int) *CostLedger {
	l := &CostLedger{
		remaining: make(map[Shard]int),
		paid:      make(map[Shard]int),
	}
	shards := cost.Shards()
	if cost != nil && cost.XCount > 0 && xValue > 0 {
		for i := 0; i < cost.XCount*xValue; i++ {
			shards = append(shards, ShardGeneric)
		}
	}
	for _, s := range shards {
		if _, seen := l.remaining[s]; !seen {
			l.order = append(l.order, s)
		}
		l.remaining[s]++
		l.total++
	}
	return l
}

// PayShard deducts one shard payable by mask. A matching colored shard is always
// preferred; generic is the fallback. Colored shards are never paid by a generic-only
// mask, and {C} shards are never paid this way at all.
func (l *CostLedger) PayShard(mask ColorSet) (Shard, bool) {
	colors := mask.Chromatic()
	if colors != ColorNone {
		for _, c := range colors.Colors() {
			if s := Shard(c); l.remaining[s] > 0 {
				l.deduct(s)
				return s, true
			}
		}
		for _, s := range l.order {
			if s.IsHybrid() && s.Colors()&colors != 0 && l.remaining[s] > 0 {
				l.deduct(s)
				return s, true
			}
		}
	}
	if l.remaining[ShardGeneric] > 0 {
		l.deduct(ShardGeneric)
		return ShardGeneric, true
	}
	return ShardGeneric, false
}

func (l *CostLedger) deduct(s Shard) {
	l.remaining[s]--
	l.paid[s]++
}

// Refund returns up to count previously paid shards of tag s to the cost.
// It never fails; refunds beyond what was paid for that tag are ignored.
func (l *CostLedger) Refund(s Shard, count int) {
	if count <= 0 {
		return
	}
	if count > l.paid[s] {
		count = l.paid[s]
	}
	l.paid[s] -= count
	l.remaining[s] += count
}

// Remaining returns a copy of the unpaid shard counts.
func (l *CostLedger) Remaining() map[Shard]int {
	out := make(map[Shard]int, len(l.remaining))
	for s, n := range l.remaining {
		if n > 0 {
			out[s] = n
		}
	}
	return out
}

// Outstanding returns the number of unpaid shards.
func (l *CostLedger) Outstanding() int {
	n := 0
	for _, count := range l.remaining {
		n += count
	}
	return n
}

// Total returns the shard count the ledger started with.
func (l *CostLedger) Total() int {
	return l.total
}

// PaidCount returns the number of shards paid so far.
func (l *CostLedger) PaidCount() int {
	return l.total - l.Outstanding()
}

// IsPaid reports whether nothing remains unpaid.
func (l *CostLedger) IsPaid() bool {
	return l.Outstanding() == 0
}

// UnpaidColors returns every color that could still pay a colored shard.
func (l *CostLedger) UnpaidColors() ColorSet {
	var cs ColorSet
	for s, n := range l.remaining {
		if n > 0 {
			cs |= s.Colors()
		}
	}
	return cs
}

// ToManaCost renders the unpaid part back into a ManaCost.
func (l *CostLedger) ToManaCost() *ManaCost {
	mc := &ManaCost{}
	for _, s := range l.order {
		n := l.remaining[s]
		if n <= 0 {
			continue
		}
		switch {
		case s == ShardGeneric:
			mc.Generic += n
		case s == ShardColorless:
			mc.Colorless += n
		case s.IsHybrid():
			for i := 0; i < n; i++ {
				mc.Hybrid = append(mc.Hybrid, s.hybridCost())
			}
		default:
			switch ColorSet(s) {
			case ColorWhite:
				mc.White += n
			case ColorBlue:
				mc.Blue += n
			case ColorBlack:
				mc.Black += n
			case ColorRed:
				mc.Red += n
			case ColorGreen:
				mc.Green += n
			}
		}
	}
	return mc
}

func (l *CostLedger) String() string {
	return l.ToManaCost().String()
}

// hybridCost rebuilds the symbol; {2/B} lists the generic half first.
func (s Shard) hybridCost() HybridCost {
	var options [][]ManaType
	if s&shardTwoGeneric != 0 {
		options = append(options, []ManaType{ManaGeneric})
	}
	for _, c := range s.Colors().Colors() {
		options = append(options, []ManaType{colorTypes[c]})
	}
	return HybridCost{Options: options}
}
