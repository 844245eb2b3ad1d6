package zones

import (
	"math"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// Score fills in the confluence score and its breakdown. Diversity and
// proximity dominate; wide zones pay a penalty proportional to their width.
func Score(z *model.Zone, p config.ZoneParams) {
	c := model.ZoneComponents{
		Diversity:    float64(z.Diversity) * p.WeightDiversity,
		MAWeight:     z.MAWeight * p.WeightMA,
		SwingTouches: math.Min(float64(z.SwingTouches)*p.WeightTouches, p.TouchesCap),
		Volume:       z.VolumeScore * p.WeightVolume,
		Fib:          float64(z.FibCount) * p.WeightFib,
		Psycho:       float64(z.PsychoCount) * p.WeightPsycho,
		TrendAlign:   float64(z.TrendAlignCount) * p.WeightTrend,
		Proximity:    p.ProximityNumer / (z.AvgDistancePct + p.ProximityOffset),
	}
	if z.Center > 0 {
		if rel := z.Width / z.Center; rel > p.WidthPenaltyFrom {
			c.WidthPenalty = rel * p.WidthPenalty
		}
	}
	z.Components = c
	z.Score = c.Diversity + c.MAWeight + c.SwingTouches + c.Volume + c.Fib +
		c.Psycho + c.TrendAlign + c.Proximity - c.WidthPenalty
}
