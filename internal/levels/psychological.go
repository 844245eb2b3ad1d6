package levels

import (
	"fmt"
	"math"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// RoundingInterval is the round-number spacing for a price.
func RoundingInterval(price float64) float64 {
	switch {
	case price < 20:
		return 5
	case price < 50:
		return 10
	case price < 100:
		return 25
	case price < 200:
		return 50
	default:
		return 100
	}
}

// Psychological adds the nearest round numbers strictly below and strictly
// above the current price. Non-positive levels are dropped.
func Psychological(in Input, p config.LevelParams) []model.LevelCandidate {
	interval := RoundingInterval(in.Current)
	label := fmt.Sprintf("Psy %g", interval)

	below := math.Floor(in.Current/interval) * interval
	if below >= in.Current {
		below -= interval
	}
	above := math.Ceil(in.Current/interval) * interval
	if above <= in.Current {
		above += interval
	}

	var out []model.LevelCandidate
	for i := 0; i < p.PsychoCount; i++ {
		if level := below - float64(i)*interval; level > 0 {
			out = append(out, model.LevelCandidate{
				Side:         model.SideSupport,
				Price:        level,
				Category:     model.CategoryPsycho,
				BaseStrength: p.PsychoStrength,
				Label:        label,
			})
		}
	}
	for i := 0; i < p.PsychoCount; i++ {
		out = append(out, model.LevelCandidate{
			Side:         model.SideResistance,
			Price:        above + float64(i)*interval,
			Category:     model.CategoryPsycho,
			BaseStrength: p.PsychoStrength,
			Label:        label,
		})
	}
	return out
}
