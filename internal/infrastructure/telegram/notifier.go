package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/internal/cfg"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// Notifier отправляет уведомления о заказах в рабочую группу магазина
// через Telegram Bot API. Если локация заказа — координаты "lat,lon",
// за текстом уведомления следует отдельное сообщение с точкой на карте.
type Notifier struct {
	httpClient *http.Client
	cfg        *cfg.TelegramCfg
	logger     logger.Logger
}

func NewNotifier(cfg *cfg.TelegramCfg, logger logger.Logger) *Notifier {
	return &Notifier{
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     logger,
	}
}

// NotifyOrder отправляет в группу карточку нового заказа.
func (n *Notifier) NotifyOrder(ctx context.Context, event *usecase.OrderCreatedEvent) error {
	const op = "Notifier.NotifyOrder"

	if err := n.NotifyText(ctx, formatOrderMessage(event)); err != nil {
		return e.Wrap(op, err)
	}

	lat, lon, ok := parseCoordinates(event.Customer.Location)
	if !ok {
		return nil
	}

	if err := n.sendLocation(ctx, lat, lon); err != nil {
		// Точка на карте — дополнение, без нее уведомление все равно доставлено
		n.logger.Warnf("%s: failed to send order location: %v", op, err)
	}

	return nil
}

// NotifyText отправляет произвольный текст в группу.
func (n *Notifier) NotifyText(ctx context.Context, text string) error {
	return n.callMethod(ctx, "sendMessage", map[string]any{
		"chat_id": n.cfg.GroupChatID,
		"text":    text,
	})
}

func (n *Notifier) sendLocation(ctx context.Context, lat, lon float64) error {
	return n.callMethod(ctx, "sendLocation", map[string]any{
		"chat_id":   n.cfg.GroupChatID,
		"latitude":  lat,
		"longitude": lon,
	})
}

func (n *Notifier) callMethod(ctx context.Context, method string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(n.cfg.APIBaseURL, "/"), n.cfg.BotToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: telegram %s returned %d: %s", whereami.WhereAmI(), method, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

// formatOrderMessage собирает текст уведомления о заказе.
func formatOrderMessage(event *usecase.OrderCreatedEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 Новый заказ #%s\n\n", event.OrderID)
	for _, line := range event.Lines {
		fmt.Fprintf(&b, "• %s × %d — %s сум\n", line.Name, line.Quantity, FormatSum(line.Price*int64(line.Quantity)))
	}
	fmt.Fprintf(&b, "\nИтого: %s сум\n", FormatSum(event.Total))
	fmt.Fprintf(&b, "Телефон: %s\n", event.Customer.Phone)
	if event.Customer.Name != "" {
		fmt.Fprintf(&b, "Имя: %s\n", event.Customer.Name)
	}
	if event.Customer.Address != "" {
		fmt.Fprintf(&b, "Адрес: %s\n", event.Customer.Address)
	}
	if _, _, ok := parseCoordinates(event.Customer.Location); !ok {
		fmt.Fprintf(&b, "Локация: %s\n", event.Customer.Location)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatSum форматирует сумму в тийинах как сумы с разделителями тысяч.
// Дробная часть печатается только если она ненулевая.
func FormatSum(tiyin int64) string {
	negative := tiyin < 0
	if negative {
		tiyin = -tiyin
	}

	sum := tiyin / 100
	rest := tiyin % 100

	digits := strconv.FormatInt(sum, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	result := b.String()
	if rest != 0 {
		result = fmt.Sprintf("%s.%02d", result, rest)
	}
	if negative {
		result = "-" + result
	}

	return result
}

// parseCoordinates распознает локацию вида "41.311081,69.240562".
func parseCoordinates(location string) (lat, lon float64, ok bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}

	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}

	return lat, lon, true
}
