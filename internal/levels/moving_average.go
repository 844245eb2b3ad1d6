package levels

import (
	"fmt"
	"math"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
	"StockSentinel/internal/profile"
)

// MovingAverages turns each recommended SMA into a candidate. Strength is the
// profile weight scaled down the further the average sits from price.
func MovingAverages(in Input, p config.LevelParams) []model.LevelCandidate {
	var out []model.LevelCandidate
	for _, period := range in.Profile.RecommendedPeriods {
		ma, err := calculator.CalculateSMA(in.Columns.Close, period)
		if err != nil {
			continue
		}
		side, ok := in.sideOf(ma)
		if !ok {
			continue
		}
		weight := profile.MAWeight(in.Profile.Type, period, p.MADefaultWeight)
		dist := math.Abs(ma-in.Current) / in.Current
		out = append(out, model.LevelCandidate{
			Side:         side,
			Price:        ma,
			Category:     model.CategoryMA,
			BaseStrength: weight * distanceFactor(dist, p),
			Label:        fmt.Sprintf("MA%d", period),
		})
	}
	return out
}

func distanceFactor(dist float64, p config.LevelParams) float64 {
	for i, band := range p.MADistanceBands {
		if dist < band {
			return p.MADistanceFactors[i]
		}
	}
	return p.MADistanceFactors[len(p.MADistanceFactors)-1]
}
