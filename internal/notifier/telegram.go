package notifier

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"StockSentinel/internal/config"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// botAPI is the subset of tgbotapi.BotAPI the notifier uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramNotifier sends HTML messages to one chat through the Bot API.
type TelegramNotifier struct {
	api        botAPI
	chatID     int64
	limiter    *rate.Limiter
	log        *logger.Logger
	maxRetries int
	backoff    time.Duration
}

// NewTelegramNotifier authorises the bot and returns a rate-limited notifier.
func NewTelegramNotifier(cfg config.TelegramConfig, log *logger.Logger) (*TelegramNotifier, error) {
	if !cfg.Enabled() {
		return nil, errors.Wrap(errors.ErrNotConfigured, "telegram bot token and chat id are required")
	}
	if log == nil {
		log = logger.Nop()
	}

	client := &http.Client{Timeout: 30 * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	return newTelegramNotifier(api, cfg, log), nil
}

func newTelegramNotifier(api botAPI, cfg config.TelegramConfig, log *logger.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:        api,
		chatID:     cfg.ChatID,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		log:        log.With("component", "telegram"),
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// Send delivers text to the configured chat, retrying with exponential backoff.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	return t.sendTo(ctx, t.chatID, text)
}

func (t *TelegramNotifier) sendTo(ctx context.Context, chatID int64, text string) error {
	var lastErr error
	for i := 0; i <= t.maxRetries; i++ {
		if err := t.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limiter")
		}

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true

		_, err := t.api.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == t.maxRetries {
			break
		}

		wait := t.backoff << uint(i)
		t.log.Warnw("telegram send failed, retrying",
			"attempt", i+1, "max_attempts", t.maxRetries+1, "backoff", wait, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return errors.Wrapf(lastErr, "all %d attempts exhausted", t.maxRetries+1)
}

// StartPolling answers bot commands from the configured chat until ctx is
// cancelled. Messages from any other chat are dropped.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)
	t.log.Infow("telegram polling started")

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			t.log.Infow("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			if chat := update.Message.Chat; chat == nil || chat.ID != t.chatID {
				t.log.Debugw("ignoring message from foreign chat", "chat", chat)
				continue
			}
			text := update.Message.Text
			t.log.Infow("received command", "text", text, "chat_id", update.Message.Chat.ID)

			reply := handler(ctx, text)
			if reply == "" {
				continue
			}
			if err := t.sendTo(ctx, t.chatID, reply); err != nil {
				t.log.Errorw("send reply failed", "error", err)
			}
		}
	}
}
