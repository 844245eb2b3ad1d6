package zones

import (
	"math"
	"sort"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// Selection is the outcome of picking actionable zones on one side.
type Selection struct {
	Actionable []model.Zone // nearest first
	Primary    *model.Zone
	Secondary  *model.Zone
}

// Zones returns primary then secondary, omitting what is absent.
func (s Selection) Zones() []model.Zone {
	var out []model.Zone
	if s.Primary != nil {
		out = append(out, *s.Primary)
	}
	if s.Secondary != nil {
		out = append(out, *s.Secondary)
	}
	return out
}

// Select keeps zones on the correct side of price within the actionable
// window, orders them nearest first (score breaks near-ties), and takes the
// nearest as primary. The secondary is the next zone at least the side's
// minimum gap further away from price than the primary.
func Select(zones []model.Zone, side model.Side, current, atr, volatility float64, p config.ZoneParams) Selection {
	window := p.ActionableWindow
	if volatility > p.VolatileAbove {
		window = p.ActionableWindowVolatile
	}

	dist := func(z model.Zone) float64 {
		if side == model.SideSupport {
			return (current - z.Center) / current
		}
		return (z.Center - current) / current
	}

	var sel Selection
	for _, z := range zones {
		if d := dist(z); d > 0 && d <= window {
			sel.Actionable = append(sel.Actionable, z)
		}
	}
	sort.SliceStable(sel.Actionable, func(i, j int) bool {
		di, dj := dist(sel.Actionable[i]), dist(sel.Actionable[j])
		if math.Abs(di-dj) < p.TieBand {
			return sel.Actionable[i].Score > sel.Actionable[j].Score
		}
		return di < dj
	})
	if len(sel.Actionable) == 0 {
		return sel
	}

	primary := sel.Actionable[0]
	sel.Primary = &primary
	gap := MinGap(side, current, atr, p)
	for _, z := range sel.Actionable[1:] {
		apart := primary.Center - z.Center
		if side == model.SideResistance {
			apart = -apart
		}
		if apart >= gap {
			secondary := z
			sel.Secondary = &secondary
			break
		}
	}
	return sel
}

// MinGap is the minimum price distance between primary and secondary zones.
// Resistance demands a much wider gap than support.
func MinGap(side model.Side, current, atr float64, p config.ZoneParams) float64 {
	if side == model.SideSupport {
		return math.Max(atr*p.GapATRFactor, math.Max(current*p.SupportGapPct, p.SupportGapAbs))
	}
	return math.Max(atr*p.GapATRFactor, math.Max(current*p.ResistanceGapPct, p.ResistanceGapAbs))
}
