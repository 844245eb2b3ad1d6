package model

import (
	"math"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Valid reports whether open, high, low and close are all present.
// Missing values arrive as NaN (or zero from sources that cannot express null).
func (b OHLCV) Valid() bool {
	for _, v := range [4]float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

// PriceSeries is a chronologically ordered (oldest first) daily history for one symbol.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// ValidBars returns a copy of the bars with incomplete bars dropped.
// A missing volume is treated as zero rather than invalidating the bar.
func (s *PriceSeries) ValidBars() []OHLCV {
	out := make([]OHLCV, 0, len(s.Bars))
	for _, b := range s.Bars {
		if !b.Valid() {
			continue
		}
		if math.IsNaN(b.Volume) || b.Volume < 0 {
			b.Volume = 0
		}
		out = append(out, b)
	}
	return out
}

// Last returns the most recent bar and false if the series is empty.
func (s *PriceSeries) Last() (OHLCV, bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Columns splits bars into the parallel slices the indicator functions consume.
type Columns struct {
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// SplitColumns converts bars into Columns.
func SplitColumns(bars []OHLCV) Columns {
	c := Columns{
		Open:   make([]float64, len(bars)),
		High:   make([]float64, len(bars)),
		Low:    make([]float64, len(bars)),
		Close:  make([]float64, len(bars)),
		Volume: make([]float64, len(bars)),
	}
	for i, b := range bars {
		c.Open[i] = b.Open
		c.High[i] = b.High
		c.Low[i] = b.Low
		c.Close[i] = b.Close
		c.Volume[i] = b.Volume
	}
	return c
}
