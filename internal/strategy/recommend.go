package strategy

import (
	"fmt"
	"strings"

	"StockSentinel/internal/model"
	"StockSentinel/internal/zones"
)

type recommendInput struct {
	current       float64
	snap          *model.IndicatorSnapshot
	candidates    []model.LevelCandidate
	supportSel    zones.Selection
	resistanceSel zones.Selection
}

// recommend derives buy, sell, stop-loss and take-profit prices. Each side
// falls back from the primary zone to the strongest raw candidate and then to
// the 50-day range.
func (e *Engine) recommend(in recommendInput) model.Recommendations {
	rp := e.cfg.Recommend
	var rec model.Recommendations

	switch raw := strongest(in.candidates, model.SideSupport); {
	case in.supportSel.Primary != nil:
		rec.BuyPrice = in.supportSel.Primary.Center
		rec.BuyReason = zoneReason("Support", in.supportSel.Primary)
	case raw != nil:
		rec.BuyPrice = raw.Price
		rec.BuyReason = fmt.Sprintf("Strongest raw support: %s %s", raw.Category, raw.Label)
		e.log.Debugw("buy price from raw candidate", "category", raw.Category, "price", raw.Price)
	default:
		rec.BuyPrice = in.snap.Low50
		rec.BuyReason = "50-day low"
		e.log.Debugw("buy price from 50-day low", "price", rec.BuyPrice)
	}

	if in.supportSel.Secondary != nil {
		buy, second := rec.BuyPrice, in.supportSel.Secondary.Center
		if second >= buy {
			buy, second = second, buy
		}
		gap := buy - second
		if gap >= rp.SecondBuyMinGapAbs && gap/buy >= rp.SecondBuyMinGapPct {
			rec.BuyPrice = buy
			rec.SecondBuyPrice = &second
		} else {
			e.log.Debugw("second buy dropped", "buy", buy, "second", second)
		}
	}

	switch raw := strongest(in.candidates, model.SideResistance); {
	case in.resistanceSel.Primary != nil:
		zone := in.resistanceSel.Primary
		rec.SellReason = zoneReason("Resistance", zone)
		if in.snap.RSI > rp.OverboughtRSI && in.resistanceSel.Secondary != nil {
			zone = in.resistanceSel.Secondary
			rec.SellReason = zoneReason("Overbought, long-horizon resistance", zone)
		}
		rec.SellPrice = zone.Center
	case raw != nil:
		rec.SellPrice = raw.Price
		rec.SellReason = fmt.Sprintf("Strongest raw resistance: %s %s", raw.Category, raw.Label)
		e.log.Debugw("sell price from raw candidate", "category", raw.Category, "price", raw.Price)
	default:
		rec.SellPrice = in.snap.High50 * rp.SellFallbackFactor
		rec.SellReason = "50-day high extension"
		e.log.Debugw("sell price from 50-day high", "price", rec.SellPrice)
	}

	if in.snap.EMA200 > 0 {
		rec.StopLoss = in.snap.EMA200 * rp.StopLossEMAFactor
	} else {
		rec.StopLoss = rec.BuyPrice * rp.StopLossBuyFactor
	}
	rec.TakeProfit = rec.SellPrice * rp.TakeProfitFactor
	if risk := rec.BuyPrice - rec.StopLoss; risk > 0 {
		rec.RiskRewardRatio = (rec.SellPrice - rec.BuyPrice) / risk
	}
	return rec
}

// strongest picks the highest base strength on a side; ties go to the nearer level.
func strongest(cs []model.LevelCandidate, side model.Side) *model.LevelCandidate {
	var best *model.LevelCandidate
	for i := range cs {
		c := &cs[i]
		if c.Side != side {
			continue
		}
		if best == nil || c.BaseStrength > best.BaseStrength ||
			(c.BaseStrength == best.BaseStrength && c.DistancePct < best.DistancePct) {
			best = c
		}
	}
	return best
}

func zoneReason(kind string, z *model.Zone) string {
	types := make([]string, len(z.Types))
	for i, t := range z.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("%s zone %.2f-%.2f (%s, score %.1f)", kind, z.Min, z.Max, strings.Join(types, "/"), z.Score)
}
