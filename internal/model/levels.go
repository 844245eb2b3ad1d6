package model

// Side of the current price a level sits on.
type Side string

const (
	SideSupport    Side = "support"
	SideResistance Side = "resistance"
)

// Category names the method that produced a level candidate.
type Category string

const (
	CategoryMA     Category = "MA"
	CategorySwing  Category = "SWING"
	CategoryVolume Category = "VOLUME"
	CategoryFib    Category = "FIB"
	CategoryFibExt Category = "FIB_EXT"
	CategoryPivot  Category = "PIVOT"
	CategoryPsycho Category = "PSYCHO"
)

// IsFibonacci reports whether the category is a retracement or an extension.
func (c Category) IsFibonacci() bool {
	return c == CategoryFib || c == CategoryFibExt
}

// LevelCandidate is a single support or resistance price from one source.
type LevelCandidate struct {
	Side         Side     `json:"side"`
	Price        float64  `json:"price"`
	Category     Category `json:"category"`
	BaseStrength float64  `json:"baseStrength"`
	DistancePct  float64  `json:"distancePct"` // fraction of current price
	TrendAligned int      `json:"trendAligned"`
	Label        string   `json:"label"`
	Touches      int      `json:"touches,omitempty"`
	VolumeRatio  float64  `json:"volumeRatio,omitempty"`
}

// ZoneComponents is the per-term breakdown of a zone's confluence score.
type ZoneComponents struct {
	Diversity    float64 `json:"diversity"`
	MAWeight     float64 `json:"maWeight"`
	SwingTouches float64 `json:"swingTouches"`
	Volume       float64 `json:"volume"`
	Fib          float64 `json:"fib"`
	Psycho       float64 `json:"psycho"`
	TrendAlign   float64 `json:"trendAlign"`
	Proximity    float64 `json:"proximity"`
	WidthPenalty float64 `json:"widthPenalty"`
}

// Zone is a cluster of same-side candidates treated as one price band.
type Zone struct {
	Side            Side             `json:"side"`
	Center          float64          `json:"center"`
	Min             float64          `json:"min"`
	Max             float64          `json:"max"`
	Width           float64          `json:"width"`
	Radius          float64          `json:"radius"`
	LevelCount      int              `json:"levelCount"`
	Types           []Category       `json:"types"`
	Diversity       int              `json:"diversity"`
	AvgDistancePct  float64          `json:"avgDistancePct"`
	SwingTouches    int              `json:"swingTouches"`
	VolumeScore     float64          `json:"volumeScore"`
	MAWeight        float64          `json:"maWeight"`
	FibCount        int              `json:"fibCount"`
	PsychoCount     int              `json:"psychoCount"`
	TrendAlignCount int              `json:"trendAlignCount"`
	Score           float64          `json:"score"`
	Components      ZoneComponents   `json:"components"`
	Levels          []LevelCandidate `json:"levels"`
}

// HasType reports whether any member candidate has the given category.
func (z *Zone) HasType(c Category) bool {
	for _, t := range z.Types {
		if t == c {
			return true
		}
	}
	return false
}
