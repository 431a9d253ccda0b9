package telegram

import (
	"fmt"
	"log/slog"
	"math"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

// Sender отправляет сообщения в Telegram; реализуется *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client пишет сводки сравнения в один чат
type Client struct {
	sender Sender
	chatID int64
	step   float64
	logger *slog.Logger
}

// NewBotAPI авторизуется в Telegram по токену
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return api, nil
}

// NewClient создаёт клиента, step задаёт шаг уведомлений о прогрессе в процентах
func NewClient(sender Sender, chatID int64, step float64, logger *slog.Logger) *Client {
	if step <= 0 {
		step = 25
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{sender: sender, chatID: chatID, step: step, logger: logger}
}

// RunSink возвращает получателя прогресса для одного запуска.
// Отправка синхронная, поэтому в цикле сравнения его оборачивают в progress.Dispatcher.
func (c *Client) RunSink(runID string) port.ProgressSink {
	return &runNotifier{client: c, runID: runID, next: c.step}
}

// ExportFinished отправляет итог экспорта
func (c *Client) ExportFinished(outcome *entity.ExportOutcome, exportErr error) {
	text := "📦 Export: "
	switch {
	case outcome != nil:
		text += outcome.Message()
	case exportErr != nil:
		text += exportErr.Error()
	default:
		return
	}
	if err := c.send(text); err != nil {
		c.logger.Warn("telegram export summary failed", "err", err)
	}
}

func (c *Client) send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	if _, err := c.sender.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// runNotifier шлёт сообщение при пересечении очередного порога и по завершении
type runNotifier struct {
	client *Client
	runID  string
	next   float64
}

func (n *runNotifier) Notify(event entity.ProgressEvent) error {
	if event.Done() {
		return n.client.send(fmt.Sprintf("✅ Run %s: compared %d images", n.runID, event.Total))
	}
	if event.Percentage < n.next {
		return nil
	}
	for n.next <= event.Percentage {
		n.next += n.client.step
	}
	return n.client.send(fmt.Sprintf("⏳ Run %s: %d/%d (%.0f%%) %s",
		n.runID, event.Current, event.Total, math.Floor(event.Percentage), event.CurrentFile))
}
