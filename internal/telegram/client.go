// Package telegram delivers scenario digests and answers chat-ops commands via the
// Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/generator"
	"github.com/rewired-gh/synthtel/internal/logger"
	"github.com/rewired-gh/synthtel/internal/metrics"
	"github.com/rewired-gh/synthtel/internal/models"
)

// ScenarioSource builds incident scenarios on demand.
type ScenarioSource interface {
	Scenario(kind generator.ScenarioKind, service string, env catalog.Environment) (*models.Scenario, error)
	Catalog() *catalog.Catalog
}

// Client handles Telegram notifications and commands.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	source         ScenarioSource
}

// NewClient creates a new Telegram client. source may be nil, in which case the
// /scenario and /services commands report that no generator is attached.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration, source ScenarioSource) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		source:         source,
	}, nil
}

// ListenForCommands starts a goroutine that polls for Telegram updates and handles bot commands.
// It returns immediately; the goroutine stops when ctx is cancelled.
func (c *Client) ListenForCommands(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil && update.Message.IsCommand() {
					c.handleCommand(update.Message)
				}
			}
		}
	}()
}

func (c *Client) handleCommand(msg *tgbotapi.Message) {
	reply := replyFor(c.source, msg.Command(), msg.CommandArguments())
	if reply == "" {
		return
	}
	if err := c.sendMarkdownV2(msg.Chat.ID, "reply", reply); err != nil {
		logger.Warn("Failed to answer /%s: %v", msg.Command(), err)
	}
}

const usage = "*synthtel bot*\n" +
	"/ping \\- liveness check\n" +
	"/services \\- list services and scenarios\n" +
	"/scenario \\<kind\\> \\[service\\] \\[env\\] \\- generate an incident digest"

// replyFor returns the MarkdownV2 answer to a command, or "" for commands the bot ignores.
func replyFor(source ScenarioSource, command, args string) string {
	switch command {
	case "ping":
		return "Pong"
	case "start", "help":
		return usage
	case "services":
		if source == nil {
			return "⚠️ No generator attached"
		}
		return formatServices(source.Catalog().Services())
	case "scenario":
		if source == nil {
			return "⚠️ No generator attached"
		}
		sc, err := scenarioFromArgs(source, args)
		if err != nil {
			return fmt.Sprintf("⚠️ %s", escapeMarkdownV2(err.Error()))
		}
		return formatScenario(sc)
	}
	return ""
}

func scenarioFromArgs(source ScenarioSource, args string) (*models.Scenario, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, fmt.Errorf("usage: /scenario <kind> [service] [env]")
	}
	kind, err := generator.ParseScenarioKind(fields[0])
	if err != nil {
		return nil, err
	}
	service := "payment-api"
	if len(fields) > 1 {
		service = fields[1]
	}
	env := catalog.Prod
	if len(fields) > 2 {
		if env, err = catalog.ParseEnvironment(fields[2]); err != nil {
			return nil, err
		}
	}
	return source.Scenario(kind, service, env)
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (c *Client) sendMarkdownV2(chatID int64, kind, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			metrics.TelegramMessagesTotal.WithLabelValues(kind, "sent").Inc()
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	metrics.TelegramMessagesTotal.WithLabelValues(kind, "failed").Inc()
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

// SendError sends a digest generation error notification.
// Call this only on the first occurrence of a consecutive error sequence.
func (c *Client) SendError(cycleErr error) error {
	text := fmt.Sprintf("⚠️ *Digest error*\n`%s`", escapeCode(cycleErr.Error()))
	return c.sendMarkdownV2(c.chatID, "error", text)
}

// SendRecovery sends a recovery notification after consecutive failures.
func (c *Client) SendRecovery(failureCount int) error {
	text := fmt.Sprintf("✅ *Digest recovered* after %d consecutive failure\\(s\\)", failureCount)
	return c.sendMarkdownV2(c.chatID, "recovery", text)
}

// SendScenario posts a scenario digest to the configured chat.
func (c *Client) SendScenario(sc *models.Scenario) error {
	return c.sendMarkdownV2(c.chatID, "scenario", formatScenario(sc))
}

func formatServices(services []string) string {
	var b strings.Builder
	b.WriteString("🗂 *Services*\n")
	for _, s := range services {
		fmt.Fprintf(&b, "• %s\n", escapeMarkdownV2(s))
	}
	b.WriteString("\n🎬 *Scenarios*\n")
	for _, k := range generator.ScenarioKinds() {
		fmt.Fprintf(&b, "• %s\n", escapeMarkdownV2(string(k)))
	}
	return b.String()
}

// formatScenario renders a scenario digest as a Telegram MarkdownV2 message.
func formatScenario(sc *models.Scenario) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 *Incident scenario: %s*\n", escapeMarkdownV2(sc.Kind))
	fmt.Fprintf(&b, "📍 %s \\(%s\\)\n", escapeMarkdownV2(sc.Service), escapeMarkdownV2(sc.Environment))
	fmt.Fprintf(&b, "📅 %s\n", escapeMarkdownV2(sc.GeneratedAt.UTC().Format("2006-01-02 15:04:05")))
	fmt.Fprintf(&b, "🆔 `%s`\n\n", escapeCode(sc.ID))
	fmt.Fprintf(&b, "%s\n\n", escapeMarkdownV2(sc.Description))

	b.WriteString("📊 *Metrics*\n")
	for _, r := range sc.Reports() {
		stats := r.PrimaryStatistics()
		line := fmt.Sprintf("%s: mean %.2f, max %.2f, Δ %+.1f%%", r.MetricName(), stats.Mean, stats.Max, stats.DeltaVsPreviousPeriod)
		fmt.Fprintf(&b, "• %s\n", escapeMarkdownV2(line))
	}

	firing := 0
	for _, a := range sc.Alerts {
		if a.Status == models.AlertFiring {
			firing++
		}
	}
	errorLogs := 0
	for _, l := range sc.Logs {
		if l.Level == models.LevelError {
			errorLogs++
		}
	}
	errorSpans := 0
	for _, t := range sc.Traces {
		for _, s := range t.Spans {
			if s.Status == models.StatusError {
				errorSpans++
			}
		}
	}
	fmt.Fprintf(&b, "\n🔔 Alerts: %d \\(%d firing\\)\n", len(sc.Alerts), firing)
	fmt.Fprintf(&b, "📝 Logs: %d \\(%d errors\\)\n", len(sc.Logs), errorLogs)
	fmt.Fprintf(&b, "🧵 Traces: %d \\(%d failed spans\\)\n\n", len(sc.Traces), errorSpans)

	fmt.Fprintf(&b, "🔎 *Root cause:* %s\n", escapeMarkdownV2(sc.RootCause))
	b.WriteString("🛠 *Recommended actions*\n")
	for i, a := range sc.RecommendedActions {
		fmt.Fprintf(&b, "%d\\. %s\n", i+1, escapeMarkdownV2(a))
	}

	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}

// escapeCode escapes text placed inside a MarkdownV2 code span.
func escapeCode(text string) string {
	return strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(text)
}
