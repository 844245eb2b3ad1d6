package strategy

import (
	"fmt"
	"sort"
	"time"

	"StockSentinel/internal/config"
	"StockSentinel/internal/levels"
	"StockSentinel/internal/model"
	"StockSentinel/internal/profile"
	"StockSentinel/internal/zones"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// InsufficientHistoryError reports a series with too few valid bars.
// It matches errors.ErrInsufficientHistory.
type InsufficientHistoryError struct {
	Symbol string
	Have   int
	Need   int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("%s: have %d valid bars, need %d: %v", e.Symbol, e.Have, e.Need, errors.ErrInsufficientHistory)
}

func (e *InsufficientHistoryError) Unwrap() error { return errors.ErrInsufficientHistory }

// Engine turns a daily price history into a TechnicalAnalysisResult.
// It holds only configuration, so one Engine may serve concurrent callers.
type Engine struct {
	cfg config.Engine
	log *logger.Logger
}

// NewEngine builds an engine. A nil logger discards the debug output.
func NewEngine(cfg config.Engine, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{cfg: cfg, log: log}
}

// Analyze runs the full pipeline: indicators, profile, level candidates,
// zones, then recommendations and messages. Bars missing any price are
// dropped before the minimum-length check.
func (e *Engine) Analyze(series *model.PriceSeries) (*model.TechnicalAnalysisResult, error) {
	if series == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "nil series")
	}
	bars := series.ValidBars()
	if len(bars) < e.cfg.MinBars {
		return nil, &InsufficientHistoryError{Symbol: series.Symbol, Have: len(bars), Need: e.cfg.MinBars}
	}

	cols := model.SplitColumns(bars)
	last := bars[len(bars)-1]
	current := last.Close

	snap, err := e.snapshot(cols)
	if err != nil {
		return nil, errors.Wrapf(err, "%s indicators", series.Symbol)
	}
	snap.Profile = profile.Classify(cols.Close, cols.Volume, e.cfg.Profile)

	candidates := levels.Generate(levels.Input{
		Columns: cols,
		Current: current,
		Profile: snap.Profile,
	}, e.cfg.Levels)

	zp := e.cfg.Zones
	supportZones := zones.Build(candidates, model.SideSupport, snap.ATR, zp)
	resistanceZones := zones.Build(candidates, model.SideResistance, snap.ATR, zp)
	supportSel := zones.Select(supportZones, model.SideSupport, current, snap.ATR, snap.Profile.Volatility, zp)
	resistanceSel := zones.Select(resistanceZones, model.SideResistance, current, snap.ATR, snap.Profile.Volatility, zp)

	trend, strength := classifyTrend(current, snap)
	rec := e.recommend(recommendInput{
		current:       current,
		snap:          &snap,
		candidates:    candidates,
		supportSel:    supportSel,
		resistanceSel: resistanceSel,
	})
	rec.AdvancedLevels = model.AdvancedLevels{
		Support:         supportSel.Zones(),
		Resistance:      resistanceSel.Zones(),
		SupportZones:    byScore(supportZones),
		ResistanceZones: byScore(resistanceZones),
		Candidates:      candidates,
	}

	e.log.Debugw("analysis complete",
		"symbol", series.Symbol,
		"bars", len(bars),
		"profile", snap.Profile.Type,
		"candidates", len(candidates),
		"support_zones", len(supportZones),
		"resistance_zones", len(resistanceZones),
		"trend", trend,
	)

	return &model.TechnicalAnalysisResult{
		Symbol:       series.Symbol,
		AsOf:         asOf(last.Time),
		Bars:         len(bars),
		CurrentPrice: current,
		Indicators:   snap,
		Signals: model.Signals{
			Overall:       trend,
			TrendStrength: strength,
			Messages:      e.messages(current, cols.Close, &snap, rec),
		},
		Recommendations: rec,
	}, nil
}

func asOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func byScore(zs []model.Zone) []model.Zone {
	out := append([]model.Zone(nil), zs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
