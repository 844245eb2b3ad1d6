// Package levels produces the raw support and resistance candidates that the
// zone clusterer merges. Every source sees the same Input and returns flat
// candidate lists; Generate annotates distance and trend alignment.
package levels

import (
	"math"
	"strings"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

// Input is everything the candidate sources read.
type Input struct {
	Columns model.Columns
	Current float64
	Profile model.StockProfile
}

// dataLength is the profile lookback clipped to the available history.
func (in Input) dataLength() int {
	n := len(in.Columns.Close)
	if in.Profile.LookbackDays <= 0 || in.Profile.LookbackDays > n {
		return n
	}
	return in.Profile.LookbackDays
}

// sideOf classifies a price against the current price. A level exactly at
// the current price belongs to neither side.
func (in Input) sideOf(price float64) (model.Side, bool) {
	switch {
	case price < in.Current:
		return model.SideSupport, true
	case price > in.Current:
		return model.SideResistance, true
	default:
		return "", false
	}
}

// Generate runs all six sources and returns their candidates in source order:
// moving averages, swings, volume nodes, Fibonacci, pivots, round numbers.
func Generate(in Input, p config.LevelParams) []model.LevelCandidate {
	if in.Current <= 0 || len(in.Columns.Close) == 0 {
		return nil
	}

	var out []model.LevelCandidate
	out = append(out, MovingAverages(in, p)...)
	out = append(out, Swings(in, p)...)
	out = append(out, VolumeNodes(in, p)...)
	out = append(out, Fibonacci(in, p)...)
	out = append(out, Pivots(in, p)...)
	out = append(out, Psychological(in, p)...)

	profile := string(in.Profile.Type)
	for i := range out {
		c := &out[i]
		c.DistancePct = math.Abs(c.Price-in.Current) / in.Current
		c.TrendAligned = 0
		if (c.Side == model.SideSupport && strings.Contains(profile, "UP")) ||
			(c.Side == model.SideResistance && strings.Contains(profile, "DOWN")) {
			c.TrendAligned = 1
		}
	}
	return out
}

// Split partitions candidates by side, preserving order.
func Split(candidates []model.LevelCandidate) (support, resistance []model.LevelCandidate) {
	for _, c := range candidates {
		if c.Side == model.SideSupport {
			support = append(support, c)
		} else {
			resistance = append(resistance, c)
		}
	}
	return support, resistance
}
