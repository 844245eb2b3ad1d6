package calculator

import "StockSentinel/internal/model"

// StandardPivots uses the classic floor-trader formulas.
func StandardPivots(high, low, close float64) model.PivotSet {
	p := (high + low + close) / 3
	return model.PivotSet{
		Pivot: p,
		R1:    2*p - low,
		R2:    p + (high - low),
		R3:    high + 2*(p-low),
		S1:    2*p - high,
		S2:    p - (high - low),
		S3:    low - 2*(high-p),
	}
}

// FibonacciPivots spaces levels at 0.382/0.618/1.0 of the range around the pivot.
func FibonacciPivots(high, low, close float64) model.PivotSet {
	p := (high + low + close) / 3
	r := high - low
	return model.PivotSet{
		Pivot: p,
		R1:    p + 0.382*r,
		R2:    p + 0.618*r,
		R3:    p + r,
		S1:    p - 0.382*r,
		S2:    p - 0.618*r,
		S3:    p - r,
	}
}

// CamarillaPivots are anchored on the close with range·1.1 divided by 12/6/4/2.
func CamarillaPivots(high, low, close float64) model.PivotSet {
	p := (high + low + close) / 3
	r := (high - low) * 1.1
	return model.PivotSet{
		Pivot: p,
		R1:    close + r/12,
		R2:    close + r/6,
		R3:    close + r/4,
		R4:    close + r/2,
		S1:    close - r/12,
		S2:    close - r/6,
		S3:    close - r/4,
		S4:    close - r/2,
	}
}

// CalculatePivots returns all three families for one bar.
func CalculatePivots(high, low, close float64) model.PivotPoints {
	return model.PivotPoints{
		Standard:  StandardPivots(high, low, close),
		Fibonacci: FibonacciPivots(high, low, close),
		Camarilla: CamarillaPivots(high, low, close),
	}
}
