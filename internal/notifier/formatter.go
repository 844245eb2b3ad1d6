package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"StockSentinel/internal/model"
)

// price renders a value rounded to cents.
func price(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func pct(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

var trendIcon = map[model.TrendLabel]string{
	model.TrendStrongBullish: "🟢🟢",
	model.TrendBullish:       "🟢",
	model.TrendNeutral:       "⚪",
	model.TrendBearish:       "🔴",
	model.TrendStrongBearish: "🔴🔴",
}

// FormatAnalysis renders one analysis result as a Telegram HTML message.
func FormatAnalysis(res *model.TechnicalAnalysisResult) string {
	var b strings.Builder
	ind := res.Indicators
	rec := res.Recommendations

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(res.Symbol), res.AsOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: %s | Bars: %s\n", price(res.CurrentPrice), humanize.Comma(int64(res.Bars))))
	b.WriteString(fmt.Sprintf("Trend: %s %s (%+d)\n", trendIcon[res.Signals.Overall], res.Signals.Overall, res.Signals.TrendStrength))
	b.WriteString(fmt.Sprintf("Profile: %s\n\n", ind.Profile.Type))

	b.WriteString("📈 <b>Indicators</b>\n")
	b.WriteString(fmt.Sprintf("  EMA21/50/200: %s / %s / %s\n", price(ind.EMA21), price(ind.EMA50), price(ind.EMA200)))
	b.WriteString(fmt.Sprintf("  RSI: %s | ATR: %s\n", decimal.NewFromFloat(ind.RSI).StringFixed(1), price(ind.ATR)))
	b.WriteString(fmt.Sprintf("  MACD hist: %s (%s)\n", decimal.NewFromFloat(ind.MACD.Histogram).StringFixed(3), ind.MACD.HistogramTrend))
	b.WriteString(fmt.Sprintf("  SuperTrend: %s @ %s | UT Bot: %s\n", ind.SuperTrend.Trend, price(ind.SuperTrend.Value), ind.UTBot.Trend))
	b.WriteString(fmt.Sprintf("  OBV: %s (%s", humanize.Comma(int64(math.Round(ind.OBV.Value))), ind.OBV.Trend))
	if ind.OBV.Divergence != model.DivergenceNone && ind.OBV.Divergence != "" {
		b.WriteString(fmt.Sprintf(", %s divergence", strings.ToLower(string(ind.OBV.Divergence))))
	}
	b.WriteString(")\n")
	b.WriteString(fmt.Sprintf("  50d range: %s - %s (%s)\n\n", price(ind.Low50), price(ind.High50), pct(ind.PricePosition)))

	b.WriteString("💰 <b>Levels</b>\n")
	b.WriteString(fmt.Sprintf("  Buy: %s", price(rec.BuyPrice)))
	if rec.SecondBuyPrice != nil {
		b.WriteString(fmt.Sprintf(" / %s", price(*rec.SecondBuyPrice)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Sell: %s\n", price(rec.SellPrice)))
	b.WriteString(fmt.Sprintf("  Stop: %s | Target: %s | R/R: %s\n",
		price(rec.StopLoss), price(rec.TakeProfit), decimal.NewFromFloat(rec.RiskRewardRatio).StringFixed(2)))
	if rec.BuyReason != "" {
		b.WriteString(fmt.Sprintf("  <i>%s</i>\n", html.EscapeString(rec.BuyReason)))
	}

	if len(res.Signals.Messages) > 0 {
		b.WriteString("\n📝 <b>Signals</b>\n")
		for _, m := range res.Signals.Messages {
			b.WriteString("  • " + html.EscapeString(m) + "\n")
		}
	}
	return b.String()
}

// FormatPivots renders the three pivot families.
func FormatPivots(symbol string, p model.PivotPoints) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📐 <b>%s pivots</b>\n\n", html.EscapeString(symbol)))
	for _, fam := range []struct {
		name string
		set  model.PivotSet
	}{
		{"Standard", p.Standard},
		{"Fibonacci", p.Fibonacci},
		{"Camarilla", p.Camarilla},
	} {
		s := fam.set
		b.WriteString(fmt.Sprintf("<b>%s</b> P %s\n", fam.name, price(s.Pivot)))
		b.WriteString(fmt.Sprintf("  R: %s / %s / %s", price(s.R1), price(s.R2), price(s.R3)))
		if s.R4 != 0 {
			b.WriteString(" / " + price(s.R4))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  S: %s / %s / %s", price(s.S1), price(s.S2), price(s.S3)))
		if s.S4 != 0 {
			b.WriteString(" / " + price(s.S4))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DigestLine summarises one symbol in a batch digest.
type DigestLine struct {
	Symbol string
	Result *model.TechnicalAnalysisResult
	Err    error
}

// FormatDigest renders the outcome of a watchlist batch.
func FormatDigest(lines []DigestLine, took time.Duration, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗓 <b>Watchlist digest</b> | %s\n\n", at.Format("2006-01-02 15:04")))

	failed := 0
	for _, l := range lines {
		sym := html.EscapeString(l.Symbol)
		if l.Err != nil || l.Result == nil {
			failed++
			reason := "no result"
			if l.Err != nil {
				reason = l.Err.Error()
			}
			b.WriteString(fmt.Sprintf("⚠️ %s: %s\n", sym, html.EscapeString(reason)))
			continue
		}
		r := l.Result
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s | buy %s | sell %s | R/R %s\n",
			trendIcon[r.Signals.Overall], sym, price(r.CurrentPrice),
			price(r.Recommendations.BuyPrice), price(r.Recommendations.SellPrice),
			decimal.NewFromFloat(r.Recommendations.RiskRewardRatio).StringFixed(2)))
	}

	b.WriteString(fmt.Sprintf("\n%s analysed, %d failed, took %s",
		humanize.Comma(int64(len(lines)-failed)), failed, took.Round(time.Millisecond)))
	return b.String()
}

// HelpText lists the bot commands.
const HelpText = "<b>Commands</b>\n" +
	"/analyze SYMBOL - full technical analysis\n" +
	"/pivots SYMBOL - standard, Fibonacci and Camarilla pivots\n" +
	"/help - this message"
