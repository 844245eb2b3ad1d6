package notifier

import (
	"context"
	"fmt"
	"strings"

	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
)

// Analyzer returns the analysis for a symbol, possibly from cache.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.TechnicalAnalysisResult, error)
}

// CommandHandler turns a chat message into a reply. An empty reply sends nothing.
type CommandHandler func(ctx context.Context, text string) string

// NewCommandHandler routes /analyze, /pivots and /help.
func NewCommandHandler(a Analyzer) CommandHandler {
	return func(ctx context.Context, text string) string {
		fields := strings.Fields(strings.TrimSpace(text))
		if len(fields) == 0 {
			return ""
		}
		// Commands addressed in groups arrive as /analyze@BotName.
		cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

		switch cmd {
		case "/start", "/help":
			return HelpText
		case "/analyze", "/pivots":
			if len(fields) < 2 {
				return fmt.Sprintf("Usage: %s SYMBOL", cmd)
			}
			symbol := strings.ToUpper(fields[1])
			res, err := a.Analyze(ctx, symbol)
			if err != nil {
				return describeError(symbol, err)
			}
			if cmd == "/pivots" {
				return FormatPivots(symbol, res.Indicators.Pivots)
			}
			return FormatAnalysis(res)
		default:
			if strings.HasPrefix(cmd, "/") {
				return "Unknown command. Send /help for the list."
			}
			return ""
		}
	}
}

func describeError(symbol string, err error) string {
	var short *strategy.InsufficientHistoryError
	switch {
	case errors.As(err, &short):
		return fmt.Sprintf("⚠️ %s has %d valid daily bars, analysis needs %d.", symbol, short.Have, short.Need)
	case errors.Is(err, errors.ErrNotFound):
		return fmt.Sprintf("⚠️ No data for %s.", symbol)
	case errors.Is(err, errors.ErrInvalidInput):
		return fmt.Sprintf("⚠️ %q is not a valid symbol.", symbol)
	default:
		return "⚠️ Analysis failed, try again later."
	}
}
