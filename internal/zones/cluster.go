// Package zones merges same-side level candidates into price bands, scores
// their confluence and picks the actionable primary and secondary zones.
package zones

import (
	"math"
	"sort"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// Radius is the merge radius around a price: a share of ATR, floored at a
// fraction of the price itself.
func Radius(price, atr float64, p config.ZoneParams) float64 {
	return math.Max(atr*p.ATRRadiusFactor, price*p.PriceRadiusFloor)
}

// Build clusters the candidates of one side and scores every resulting zone.
// Candidates from the other side are ignored.
func Build(candidates []model.LevelCandidate, side model.Side, atr float64, p config.ZoneParams) []model.Zone {
	var levels []model.LevelCandidate
	for _, c := range candidates {
		if c.Side == side {
			levels = append(levels, c)
		}
	}
	if len(levels) == 0 {
		return nil
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Price < levels[j].Price })

	var zones []model.Zone
	members := []model.LevelCandidate{levels[0]}
	center := levels[0].Price
	for _, lvl := range levels[1:] {
		reach := math.Max(Radius(lvl.Price, atr, p), Radius(center, atr, p))
		if math.Abs(lvl.Price-center) <= reach {
			members = append(members, lvl)
			center = weightedCenter(members)
			continue
		}
		zones = append(zones, aggregate(side, center, members, atr, p))
		members = []model.LevelCandidate{lvl}
		center = lvl.Price
	}
	zones = append(zones, aggregate(side, center, members, atr, p))

	for i := range zones {
		Score(&zones[i], p)
	}
	return zones
}

func strengthWeight(c model.LevelCandidate) float64 {
	if c.BaseStrength <= 0 {
		return 1
	}
	return c.BaseStrength
}

func weightedCenter(members []model.LevelCandidate) float64 {
	var sum, weights float64
	for _, m := range members {
		w := strengthWeight(m)
		sum += m.Price * w
		weights += w
	}
	return sum / weights
}

func aggregate(side model.Side, center float64, members []model.LevelCandidate, atr float64, p config.ZoneParams) model.Zone {
	z := model.Zone{
		Side:       side,
		Center:     center,
		Min:        members[0].Price,
		Max:        members[0].Price,
		Radius:     Radius(center, atr, p),
		LevelCount: len(members),
		Levels:     members,
	}
	seen := make(map[model.Category]bool)
	distance := 0.0
	for _, m := range members {
		z.Min = math.Min(z.Min, m.Price)
		z.Max = math.Max(z.Max, m.Price)
		if !seen[m.Category] {
			seen[m.Category] = true
			z.Types = append(z.Types, m.Category)
		}
		distance += m.DistancePct
		z.TrendAlignCount += m.TrendAligned

		switch {
		case m.Category == model.CategorySwing:
			z.SwingTouches += m.Touches
		case m.Category == model.CategoryVolume:
			z.VolumeScore += m.VolumeRatio
		case m.Category == model.CategoryMA:
			z.MAWeight += m.BaseStrength
		case m.Category.IsFibonacci():
			z.FibCount++
		case m.Category == model.CategoryPsycho:
			z.PsychoCount++
		}
	}
	z.Width = z.Max - z.Min
	z.Diversity = len(z.Types)
	z.AvgDistancePct = distance / float64(len(members))
	return z
}
