package model

// ProfileType is the behavioural class assigned to an instrument.
type ProfileType string

const (
	ProfileStableUptrend   ProfileType = "STABLE_UPTREND"
	ProfileStableDowntrend ProfileType = "STABLE_DOWNTREND"
	ProfileHighMomentum    ProfileType = "HIGH_MOMENTUM"
	ProfileHighVolatility  ProfileType = "HIGH_VOLATILITY"
	ProfileStrongGrowth    ProfileType = "STRONG_GROWTH"
	ProfileMixed           ProfileType = "MIXED"
)

// IsStable reports whether the profile is one of the low-volatility profiles.
func (p ProfileType) IsStable() bool {
	return p == ProfileStableUptrend || p == ProfileStableDowntrend
}

// IsVolatile reports whether the profile is one of the high-volatility profiles.
func (p ProfileType) IsVolatile() bool {
	return p == ProfileHighMomentum || p == ProfileHighVolatility
}

// StockProfile parameterizes level generation for one analysis.
type StockProfile struct {
	Type               ProfileType `json:"type"`
	RecommendedPeriods []int       `json:"recommendedPeriods"`
	LookbackDays       int         `json:"lookbackDays"`
	FocusNote          string      `json:"focusNote"`

	// Fingerprint the classification was made from.
	Volatility    float64 `json:"volatility"`
	TrendStrength float64 `json:"trendStrength"`
	VolumeTrend   float64 `json:"volumeTrend"`
	SMA50         float64 `json:"sma50"`
	SMA200        float64 `json:"sma200"`
}
