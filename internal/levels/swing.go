package levels

import (
	"math"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// Swings finds bars whose high (low) is strictly above (below) every bar
// within swingStrength on both sides, inside the profile lookback. Swing
// highs only count as resistance above price and swing lows only as support
// below it.
func Swings(in Input, p config.LevelParams) []model.LevelCandidate {
	highs, lows := in.Columns.High, in.Columns.Low
	n := len(highs)
	dataLength := in.dataLength()
	strength := swingStrength(in.Profile.Type, p)

	var out []model.LevelCandidate
	for i := strength; i < dataLength-strength; i++ {
		idx := n - dataLength + i

		if isSwingHigh(highs, idx, strength) && highs[idx] > in.Current {
			touches := countTouches(highs, idx, p)
			out = append(out, model.LevelCandidate{
				Side:         model.SideResistance,
				Price:        highs[idx],
				Category:     model.CategorySwing,
				BaseStrength: float64(touches),
				Touches:      touches,
				Label:        "Swing High",
			})
		}
		if isSwingLow(lows, idx, strength) && lows[idx] < in.Current {
			touches := countTouches(lows, idx, p)
			out = append(out, model.LevelCandidate{
				Side:         model.SideSupport,
				Price:        lows[idx],
				Category:     model.CategorySwing,
				BaseStrength: float64(touches),
				Touches:      touches,
				Label:        "Swing Low",
			})
		}
	}
	return out
}

func swingStrength(t model.ProfileType, p config.LevelParams) int {
	switch t {
	case model.ProfileHighVolatility:
		return p.SwingStrengthVolatile
	case model.ProfileHighMomentum:
		return p.SwingStrengthMomentum
	default:
		return p.SwingStrengthDefault
	}
}

func isSwingHigh(highs []float64, idx, strength int) bool {
	for j := 1; j <= strength; j++ {
		if highs[idx-j] >= highs[idx] || highs[idx+j] >= highs[idx] {
			return false
		}
	}
	return true
}

func isSwingLow(lows []float64, idx, strength int) bool {
	for j := 1; j <= strength; j++ {
		if lows[idx-j] <= lows[idx] || lows[idx+j] <= lows[idx] {
			return false
		}
	}
	return true
}

// countTouches is 1 plus the number of other bars in the surrounding window
// that came within the touch tolerance of prices[idx], capped.
func countTouches(prices []float64, idx int, p config.LevelParams) int {
	target := prices[idx]
	tolerance := target * p.TouchTolerance
	start := idx - p.TouchWindow
	if start < 0 {
		start = 0
	}
	end := idx + p.TouchWindow
	if end > len(prices) {
		end = len(prices)
	}

	touches := 1
	for i := start; i < end; i++ {
		if i != idx && math.Abs(prices[i]-target) <= tolerance {
			touches++
		}
	}
	if touches > p.TouchCap {
		touches = p.TouchCap
	}
	return touches
}
