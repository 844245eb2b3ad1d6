package levels

import (
	"sort"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

type volumeNode struct {
	price   float64
	volume  float64
	touches int
}

// bucketCount coarsens the profile for volatile instruments.
func bucketCount(volatility float64, p config.LevelParams) int {
	if volatility > p.VolumeVolatileAbove {
		return p.VolumeBucketsVolatile
	}
	return p.VolumeBuckets
}

// VolumeNodes builds a volume-at-price profile over the recent window and
// returns the heaviest nodes. A bar contributes its whole volume to every
// bucket price inside its [low, high] range.
func VolumeNodes(in Input, p config.LevelParams) []model.LevelCandidate {
	cols := in.Columns
	n := len(cols.Close)
	period := int(float64(in.dataLength()) * p.VolumePeriodFraction)
	if period > p.VolumePeriodMax {
		period = p.VolumePeriodMax
	}
	if period < 1 {
		return nil
	}

	high, low, err := calculator.HighLow(cols.High, cols.Low, period)
	if err != nil {
		return nil
	}
	buckets := bucketCount(in.Profile.Volatility, p)
	step := (high - low) / float64(buckets)
	if step <= 0 {
		step = in.Current * p.VolumeMinStepFraction
	}

	var nodes []volumeNode
	for k := 0; k <= buckets; k++ {
		price := low + float64(k)*step
		node := volumeNode{price: price}
		for i := n - period; i < n; i++ {
			if cols.Low[i] <= price && cols.High[i] >= price {
				node.volume += cols.Volume[i]
				node.touches++
			}
		}
		if node.touches > 0 {
			nodes = append(nodes, node)
		}
	}
	if len(nodes) == 0 {
		return nil
	}

	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].volume > nodes[j].volume })
	maxVolume := nodes[0].volume
	if maxVolume <= 0 {
		return nil
	}
	if len(nodes) > p.VolumeTopNodes {
		nodes = nodes[:p.VolumeTopNodes]
	}

	var out []model.LevelCandidate
	for _, node := range nodes {
		side, ok := in.sideOf(node.price)
		if !ok {
			continue
		}
		ratio := node.volume / maxVolume
		out = append(out, model.LevelCandidate{
			Side:         side,
			Price:        node.price,
			Category:     model.CategoryVolume,
			BaseStrength: ratio * p.VolumeStrengthFactor,
			VolumeRatio:  ratio,
			Touches:      node.touches,
			Label:        "Volume Node",
		})
	}
	return out
}
