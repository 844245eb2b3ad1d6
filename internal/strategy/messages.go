package strategy

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

// messages renders the human-readable signal list.
func (e *Engine) messages(current float64, closes []float64, s *model.IndicatorSnapshot, rec model.Recommendations) []string {
	rp := e.cfg.Recommend
	out := []string{}

	switch pos := s.PricePosition; {
	case pos < 20:
		out = append(out, "Strong buy zone: price is in the bottom 20% of its 50-day range")
	case pos < 40:
		out = append(out, "Good buy zone: price is in the lower part of its 50-day range")
	case pos > 80:
		out = append(out, "Expensive: price is in the top 20% of its 50-day range, consider trimming")
	case pos > 60:
		out = append(out, "Above mid-range: wait for a pullback before adding")
	}

	switch rsi := s.RSI; {
	case rsi < 30:
		out = append(out, fmt.Sprintf("RSI very low (%.0f): oversold, strong accumulation opportunity", rsi))
	case rsi < 40:
		out = append(out, fmt.Sprintf("RSI low (%.0f): room to add", rsi))
	case rsi > 70:
		out = append(out, fmt.Sprintf("RSI high (%.0f): overbought, consider taking partial profit", rsi))
	case rsi > 60:
		out = append(out, fmt.Sprintf("RSI elevated (%.0f): wait before new buys", rsi))
	}

	if s.EMA200 > 0 {
		switch {
		case current > s.EMA200:
			if dist := (current - s.EMA200) / s.EMA200; dist > rp.ExpensiveAboveEMA200 {
				out = append(out, fmt.Sprintf("%.1f%% above EMA200: stretched, a correction is possible", dist*100))
			} else {
				out = append(out, "Above EMA200: healthy long-term uptrend")
			}
		case current < s.EMA200:
			if dist := (s.EMA200 - current) / current; dist > rp.OpportunityBelowEMA200 {
				out = append(out, fmt.Sprintf("%.1f%% below EMA200: strong long-term accumulation opportunity", dist*100))
			} else {
				out = append(out, "Below EMA200: be careful, an entry may be near")
			}
		}
	}

	if msg := e.crossMessage(closes, s); msg != "" {
		out = append(out, msg)
	}

	switch s.MACD.Crossover {
	case model.CrossoverBullish:
		out = append(out, "MACD bullish crossover: momentum turned positive")
	case model.CrossoverBearish:
		out = append(out, "MACD bearish crossover: momentum turned negative")
	}
	switch s.MACD.HistogramTrend {
	case model.HistogramStrongBullish:
		out = append(out, "MACD histogram rising: upside momentum building")
	case model.HistogramWeakeningBullish:
		out = append(out, "MACD histogram fading: upside momentum slowing")
	case model.HistogramStrongBearish:
		out = append(out, "MACD histogram falling: downside momentum building")
	case model.HistogramWeakeningBearish:
		out = append(out, "MACD histogram recovering: selling pressure easing")
	}

	if s.SuperTrend.Trend == model.DirectionLong {
		out = append(out, "SuperTrend LONG: short-term uptrend active")
	} else {
		out = append(out, "SuperTrend SHORT: short-term downtrend, consider partial profit")
	}

	ut := s.UTBot
	utRisk := ut.Trend == model.DirectionShort || current < ut.SellLevel
	switch {
	case ut.Trend == model.DirectionLong && current > ut.BuyLevel:
		out = append(out, "UT Bot LONG: main trend intact above support, hold")
	case utRisk:
		out = append(out, "UT Bot RISK: main trend support lost")
	}
	switch {
	case s.SuperTrend.Trend == model.DirectionLong && ut.Trend == model.DirectionLong:
		out = append(out, "High confidence: SuperTrend and UT Bot are both LONG")
	case s.SuperTrend.Trend == model.DirectionShort && utRisk:
		out = append(out, "Urgent: SuperTrend and UT Bot are both negative, exit")
	}

	switch s.OBV.Divergence {
	case model.DivergenceBearish:
		out = append(out, "OBV bearish divergence: price rising on falling volume")
	case model.DivergenceBullish:
		out = append(out, "OBV bullish divergence: price falling while volume accumulates")
	}
	switch {
	case s.OBV.Trend == model.OBVRising && s.OBV.Momentum > 0:
		out = append(out, "OBV rising: volume confirms the trend")
	case s.OBV.Trend == model.OBVFalling && s.OBV.Momentum < 0:
		out = append(out, "OBV falling: volume does not support the trend")
	}

	if rec.SecondBuyPrice != nil {
		out = append(out, fmt.Sprintf("Scale in: first buy %.2f, second buy %.2f", rec.BuyPrice, *rec.SecondBuyPrice))
	}
	return out
}

// crossMessage compares EMA50 against EMA200 now and CrossLookback bars ago.
func (e *Engine) crossMessage(closes []float64, s *model.IndicatorSnapshot) string {
	back := e.cfg.Indicators.CrossLookback
	if s.EMA200 == 0 || back <= 0 || len(closes) <= back {
		return ""
	}
	prior := closes[:len(closes)-back]
	prev50, err := calculator.CalculateEMA(prior, 50)
	if err != nil {
		return ""
	}
	prev200, err := calculator.CalculateEMA(prior, 200)
	if err != nil {
		return ""
	}
	switch {
	case s.EMA50 > s.EMA200 && prev50 <= prev200:
		return "Golden cross: EMA50 moved above EMA200"
	case s.EMA50 < s.EMA200 && prev50 >= prev200:
		return "Death cross: EMA50 moved below EMA200"
	}
	return ""
}
