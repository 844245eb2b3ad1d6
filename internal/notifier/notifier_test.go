package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

func sampleResult() *model.TechnicalAnalysisResult {
	second := 90.125
	return &model.TechnicalAnalysisResult{
		Symbol:       "AAPL",
		AsOf:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Bars:         1250,
		CurrentPrice: 101.456,
		Indicators: model.IndicatorSnapshot{
			EMA21: 100, EMA50: 98, EMA200: 90, RSI: 61.23, ATR: 2.5,
			OBV:     model.OBVState{Value: 12345678, Trend: model.OBVRising, Divergence: model.DivergenceBearish},
			Profile: model.StockProfile{Type: model.ProfileStableUptrend},
			Pivots: model.PivotPoints{
				Standard:  model.PivotSet{Pivot: 100, R1: 110, R2: 120, R3: 130, S1: 90, S2: 80, S3: 70},
				Camarilla: model.PivotSet{Pivot: 100, R1: 101.83, R2: 103.67, R3: 105.5, R4: 111, S1: 98.17, S2: 96.33, S3: 94.5, S4: 89},
			},
		},
		Signals: model.Signals{
			Overall:       model.TrendBullish,
			TrendStrength: 2,
			Messages:      []string{"Price above EMA200 <long-term>"},
		},
		Recommendations: model.Recommendations{
			BuyPrice: 95.5, SecondBuyPrice: &second, SellPrice: 110,
			StopLoss: 85.95, TakeProfit: 115.5, RiskRewardRatio: 1.5,
			BuyReason: "MA+SWING zone",
		},
	}
}

func TestFormatAnalysis(t *testing.T) {
	msg := FormatAnalysis(sampleResult())

	assert.Contains(t, msg, "<b>AAPL</b> | 2024-05-01")
	assert.Contains(t, msg, "Price: 101.46 | Bars: 1,250")
	assert.Contains(t, msg, "BULLISH (+2)")
	assert.Contains(t, msg, "OBV: 12,345,678 (RISING, bearish divergence)")
	assert.Contains(t, msg, "Buy: 95.50 / 90.13")
	assert.Contains(t, msg, "R/R: 1.50")
	assert.Contains(t, msg, "&lt;long-term&gt;", "messages are HTML escaped")
}

func TestFormatPivots(t *testing.T) {
	msg := FormatPivots("AAPL", sampleResult().Indicators.Pivots)
	assert.Contains(t, msg, "<b>Standard</b> P 100.00")
	assert.Contains(t, msg, "R: 110.00 / 120.00 / 130.00\n")
	assert.Contains(t, msg, "R: 101.83 / 103.67 / 105.50 / 111.00")
	assert.Contains(t, msg, "S: 98.17 / 96.33 / 94.50 / 89.00")
}

func TestFormatDigest(t *testing.T) {
	lines := []DigestLine{
		{Symbol: "AAPL", Result: sampleResult()},
		{Symbol: "NEWCO", Err: errors.New("insufficient history")},
	}
	msg := FormatDigest(lines, 1500*time.Millisecond, time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC))

	assert.Contains(t, msg, "2024-05-01 22:30")
	assert.Contains(t, msg, "<b>AAPL</b> 101.46 | buy 95.50 | sell 110.00")
	assert.Contains(t, msg, "NEWCO: insufficient history")
	assert.Contains(t, msg, "1 analysed, 1 failed, took 1.5s")
}

type stubAnalyzer struct {
	res *model.TechnicalAnalysisResult
	err error
	got string
}

func (s *stubAnalyzer) Analyze(_ context.Context, symbol string) (*model.TechnicalAnalysisResult, error) {
	s.got = symbol
	return s.res, s.err
}

func TestCommandHandler(t *testing.T) {
	ctx := context.Background()

	ok := &stubAnalyzer{res: sampleResult()}
	h := NewCommandHandler(ok)
	assert.Contains(t, h(ctx, "/analyze aapl"), "Price: 101.46")
	assert.Equal(t, "AAPL", ok.got)
	assert.Contains(t, h(ctx, "/pivots@SentinelBot AAPL"), "AAPL pivots")
	assert.Equal(t, HelpText, h(ctx, "/help"))
	assert.Equal(t, "Usage: /analyze SYMBOL", h(ctx, "/analyze"))
	assert.Contains(t, h(ctx, "/foo"), "Unknown command")
	assert.Empty(t, h(ctx, "hello"))
	assert.Empty(t, h(ctx, "   "))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"short", &strategy.InsufficientHistoryError{Symbol: "NEWCO", Have: 20, Need: 200}, "has 20 valid daily bars, analysis needs 200"},
		{"missing", errors.Wrap(errors.ErrNotFound, "chart snapshot"), "No data for NEWCO"},
		{"invalid", errors.Wrap(errors.ErrInvalidInput, "symbol"), "not a valid symbol"},
		{"other", errors.New("boom"), "Analysis failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCommandHandler(&stubAnalyzer{err: tt.err})
			assert.Contains(t, h(ctx, "/analyze NEWCO"), tt.want)
		})
	}
}

type fakeBot struct {
	mu       sync.Mutex
	failures int
	sent     []tgbotapi.MessageConfig
	updates  chan tgbotapi.Update
	stopped  bool
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return tgbotapi.Message{}, errors.New("telegram 502")
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeBot) sentMessages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

func testNotifier(bot *fakeBot) *TelegramNotifier {
	n := newTelegramNotifier(bot, config.TelegramConfig{ChatID: 42, RatePerSecond: 1000, Burst: 10}, logger.Nop())
	n.backoff = time.Millisecond
	return n
}

func TestSendRetries(t *testing.T) {
	bot := &fakeBot{failures: 2}
	n := testNotifier(bot)

	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	sent := bot.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, sent[0].ParseMode)
}

func TestSendGivesUp(t *testing.T) {
	bot := &fakeBot{failures: 10}
	n := testNotifier(bot)

	err := n.Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 4 attempts exhausted")
	assert.Empty(t, bot.sentMessages())
}

func TestSendHonoursContext(t *testing.T) {
	bot := &fakeBot{failures: 10}
	n := testNotifier(bot)
	n.backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Send(ctx, "x"), context.DeadlineExceeded)
}

func TestStartPollingRepliesToConfiguredChat(t *testing.T) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 3)}
	n := testNotifier(bot)

	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "/help", Chat: &tgbotapi.Chat{ID: 7}}}
	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "/help", Chat: &tgbotapi.Chat{ID: 42}}}
	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "just chatting", Chat: &tgbotapi.Chat{ID: 42}}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, NewCommandHandler(&stubAnalyzer{}))
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(bot.sentMessages()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	sent := bot.sentMessages()
	require.Len(t, sent, 1, "chat 7 is not the configured chat")
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, HelpText, sent[0].Text)
	bot.mu.Lock()
	assert.True(t, bot.stopped)
	bot.mu.Unlock()
}

func TestStartPollingIgnoresForeignChats(t *testing.T) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 2)}
	n := testNotifier(bot)

	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "/help", Chat: &tgbotapi.Chat{ID: 1001}}}
	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "/help"}}
	close(bot.updates)

	n.StartPolling(context.Background(), NewCommandHandler(&stubAnalyzer{}))
	assert.Empty(t, bot.sentMessages())
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = NoopNotifier{}
	assert.NoError(t, n.Send(context.Background(), "x"))
}
