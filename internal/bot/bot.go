// Package bot is the Telegram surface of the resolver, for community members
// who look up translations in chat.
package bot

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"tangkhul/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// translator is the resolver surface the bot needs
type translator interface {
	Resolve(text, sourceLang, targetLang string) (*domain.Result, error)
}

// requestLogger is the analytics surface the bot needs
type requestLogger interface {
	Log(rec *domain.RequestLog)
}

// Bot answers free-text messages with translations
type Bot struct {
	bot       *tele.Bot
	resolver  translator
	analytics requestLogger
	logger    *zap.Logger

	// Per-user translation direction, defaulting to english -> tangkhul
	directions  map[int64]string
	directionMu sync.RWMutex
}

var (
	btnFlip = tele.Btn{Text: "🔄 Switch direction", Unique: "flip_direction"}
)

// New creates the Telegram surface
func New(b *tele.Bot, resolver translator, analytics requestLogger, logger *zap.Logger) *Bot {
	return &Bot{
		bot:        b,
		resolver:   resolver,
		analytics:  analytics,
		logger:     logger,
		directions: make(map[int64]string),
	}
}

// RegisterHandlers registers all bot handlers
func (b *Bot) RegisterHandlers() {
	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle(tele.OnText, b.handleText)
	b.bot.Handle(&btnFlip, b.handleFlip)
}

// Start begins long polling; blocks until Stop
func (b *Bot) Start() {
	b.bot.Start()
}

// Stop shuts the poller down
func (b *Bot) Stop() {
	b.bot.Stop()
}

// handleStart handles /start command
func (b *Bot) handleStart(c tele.Context) error {
	b.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnFlip))

	return c.Send(
		"Kachi! Send me a phrase and I will look up its translation.\n\n"+
			"Current direction: English → Tangkhul",
		markup,
	)
}

// handleFlip toggles the user's translation direction
func (b *Bot) handleFlip(c tele.Context) error {
	userID := c.Sender().ID

	b.directionMu.Lock()
	source := b.sourceLangLocked(userID)
	next := "english"
	if source == "english" {
		next = "tangkhul"
	}
	b.directions[userID] = next
	b.directionMu.Unlock()

	if next == "english" {
		return c.Send("Direction: English → Tangkhul")
	}
	return c.Send("Direction: Tangkhul → English")
}

// handleText resolves a free-text query
func (b *Bot) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	userID := c.Sender().ID
	source, target := b.direction(userID)

	start := time.Now()
	result, err := b.resolver.Resolve(text, source, target)
	latency := time.Since(start).Milliseconds()

	rec := &domain.RequestLog{
		Query:          text,
		SourceLanguage: source,
		TargetLanguage: target,
		LatencyMs:      latency,
		UserID:         fmt.Sprintf("tg:%d", userID),
	}

	if err != nil {
		rec.Failed = true
		b.analytics.Log(rec)
		return b.replyError(c, err)
	}

	rec.Method = result.Method
	rec.Confidence = result.Confidence
	rec.CacheHit = result.Method == domain.MethodCacheHit
	b.analytics.Log(rec)

	reply := fmt.Sprintf("%s\n\nConfidence: %d%%", result.TranslatedText, result.Confidence)
	if result.Method == domain.MethodPartial {
		reply += "\nWords in [brackets] have no translation yet."
	}
	return c.Send(reply)
}

func (b *Bot) replyError(c tele.Context, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Send("Please send a phrase with at least one word.")
	}

	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) {
		if len(nfErr.Suggestions) == 0 {
			return c.Send("No translation found yet. You can contribute one on the website!")
		}
		lines := []string{"No exact translation found. Did you mean:"}
		for _, s := range nfErr.Suggestions {
			lines = append(lines, fmt.Sprintf("• %s → %s", s.Source, s.Text))
		}
		return c.Send(strings.Join(lines, "\n"))
	}

	if errors.Is(err, domain.ErrNoData) {
		return c.Send("The corpus has no entries for this language pair yet.")
	}

	b.logger.Error("bot resolution failed", zap.Error(err))
	return c.Send("Something went wrong, please try again later.")
}

func (b *Bot) direction(userID int64) (string, string) {
	b.directionMu.RLock()
	defer b.directionMu.RUnlock()

	source := b.sourceLangLocked(userID)
	if source == "english" {
		return "english", "tangkhul"
	}
	return "tangkhul", "english"
}

func (b *Bot) sourceLangLocked(userID int64) string {
	if lang, ok := b.directions[userID]; ok {
		return lang
	}
	return "english"
}
