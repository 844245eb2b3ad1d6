package levels

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// recentSwing is the high/low of the Fibonacci window, which pivots share.
func recentSwing(in Input, p config.LevelParams) (high, low float64, ok bool) {
	period := int(float64(in.dataLength()) * p.FibPeriodFraction)
	if period > p.FibPeriodMax {
		period = p.FibPeriodMax
	}
	if period < 1 {
		return 0, 0, false
	}
	high, low, err := calculator.HighLow(in.Columns.High, in.Columns.Low, period)
	if err != nil {
		return 0, 0, false
	}
	return high, low, true
}

type fibLevel struct {
	price    float64
	strength float64
	label    string
}

// Fibonacci adds the 38.2/50/61.8 retracements below price as support and the
// 100/127.2/161.8 extensions above price as resistance. 23.6 and 78.6 are
// left out. Labels measure up from the swing low, so "61.8" is
// low + 0.618*range (the calculator's L382) and carries the most weight.
func Fibonacci(in Input, p config.LevelParams) []model.LevelCandidate {
	high, low, ok := recentSwing(in, p)
	if !ok {
		return nil
	}
	fib := calculator.CalculateFibonacci(high, low)

	var out []model.LevelCandidate
	for _, l := range []fibLevel{
		{fib.L618, 1.8, "38.2"},
		{fib.L500, 2.0, "50"},
		{fib.L382, 2.5, "61.8"},
	} {
		if l.price < in.Current {
			out = append(out, model.LevelCandidate{
				Side:         model.SideSupport,
				Price:        l.price,
				Category:     model.CategoryFib,
				BaseStrength: l.strength,
				Label:        l.label,
			})
		}
	}
	for _, l := range []fibLevel{
		{fib.L0, 2.5, "100"},
		{fib.Ext1272, 2.0, "127.2"},
		{fib.Ext1618, 1.5, "161.8"},
	} {
		if l.price > in.Current {
			out = append(out, model.LevelCandidate{
				Side:         model.SideResistance,
				Price:        l.price,
				Category:     model.CategoryFibExt,
				BaseStrength: l.strength,
				Label:        l.label,
			})
		}
	}
	return out
}

// Pivots adds standard S1-S3 below price and R1-R3 above it, computed from
// the Fibonacci window's swing and the current price. Nearer ranks are stronger.
func Pivots(in Input, p config.LevelParams) []model.LevelCandidate {
	high, low, ok := recentSwing(in, p)
	if !ok {
		return nil
	}
	ps := calculator.StandardPivots(high, low, in.Current)

	var out []model.LevelCandidate
	for idx, price := range []float64{ps.S1, ps.S2, ps.S3} {
		if price < in.Current {
			out = append(out, model.LevelCandidate{
				Side:         model.SideSupport,
				Price:        price,
				Category:     model.CategoryPivot,
				BaseStrength: p.PivotBaseStrength - float64(idx)*p.PivotRankDecay,
				Label:        fmt.Sprintf("S%d", idx+1),
			})
		}
	}
	for idx, price := range []float64{ps.R1, ps.R2, ps.R3} {
		if price > in.Current {
			out = append(out, model.LevelCandidate{
				Side:         model.SideResistance,
				Price:        price,
				Category:     model.CategoryPivot,
				BaseStrength: p.PivotBaseStrength - float64(idx)*p.PivotRankDecay,
				Label:        fmt.Sprintf("R%d", idx+1),
			})
		}
	}
	return out
}
