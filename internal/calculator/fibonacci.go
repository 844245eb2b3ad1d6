package calculator

import "StockSentinel/internal/model"

// CalculateFibonacci measures retracements down from high and extensions above it.
// A zero-width range collapses every level onto high.
func CalculateFibonacci(high, low float64) model.FibonacciLevels {
	diff := high - low
	return model.FibonacciLevels{
		High:    high,
		Low:     low,
		L0:      high,
		L236:    high - diff*0.236,
		L382:    high - diff*0.382,
		L500:    high - diff*0.5,
		L618:    high - diff*0.618,
		L786:    high - diff*0.786,
		L1000:   low,
		Ext1272: high + diff*0.272,
		Ext1618: high + diff*0.618,
		Ext2618: high + diff*1.618,
	}
}
