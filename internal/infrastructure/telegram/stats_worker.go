package telegram

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// statsHours — часы отправки сводки по заказам (локальное время).
var statsHours = []int{7, 10, 13, 16, 19}

// Еженедельная сводка уходит по воскресеньям в 22:00 локального времени.
const (
	weeklyReportDay  = time.Sunday
	weeklyReportHour = 22
)

// StatsWorker шлет в группу периодическую сводку заказов. Окно сводки —
// от предыдущего момента отправки до текущего; пустые окна молча
// пропускаются.
type StatsWorker struct {
	orders   usecase.OrderUC
	notifier usecase.Notifier
	logger   logger.Logger
	stop     chan struct{}
	wg       sync.WaitGroup
	now      func() time.Time
}

func NewStatsWorker(orders usecase.OrderUC, notifier usecase.Notifier, logger logger.Logger) *StatsWorker {
	return &StatsWorker{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

func (w *StatsWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *StatsWorker) run(ctx context.Context) {
	for {
		now := w.now()
		next := nextBoundary(now)
		weeklyNext := nextWeeklyBoundary(now)
		weekly := weeklyNext.Before(next)
		if weekly {
			next = weeklyNext
		}

		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-time.After(next.Sub(now)):
		}

		if weekly {
			w.report(ctx, next.AddDate(0, 0, -7), next, formatWeeklyStatsMessage)
		} else {
			w.report(ctx, prevBoundary(next), next, formatStatsMessage)
		}
	}
}

func (w *StatsWorker) report(ctx context.Context, from, to time.Time, format func(from, to time.Time, stats *usecase.StatsRes) string) {
	const op = "StatsWorker.report"

	stats, err := w.orders.StatsForWindow(ctx, &usecase.StatsReq{From: from, To: to})
	if err != nil {
		w.logger.Warnf("%s: failed to load order stats: %v", op, err)
		return
	}

	if stats.TotalOrders == 0 {
		w.logger.Debugf("%s: no orders in window %s — %s, skipping report", op, from.Format("02.01 15:04"), to.Format("02.01 15:04"))
		return
	}

	if err := w.notifier.NotifyText(ctx, format(from, to, stats)); err != nil {
		w.logger.Warnf("%s: failed to send stats report: %v", op, err)
	}
}

// nextBoundary возвращает ближайший будущий момент отправки сводки.
func nextBoundary(now time.Time) time.Time {
	for _, hour := range statsHours {
		boundary := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if boundary.After(now) {
			return boundary
		}
	}

	// Все сегодняшние часы прошли — первый час завтра
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), statsHours[0], 0, 0, 0, now.Location())
}

// prevBoundary возвращает момент отправки, предшествующий boundary.
func prevBoundary(boundary time.Time) time.Time {
	hour := boundary.Hour()
	for i := len(statsHours) - 1; i >= 0; i-- {
		if statsHours[i] < hour {
			return time.Date(boundary.Year(), boundary.Month(), boundary.Day(), statsHours[i], 0, 0, 0, boundary.Location())
		}
	}

	// Первый час дня — окно тянется с последнего часа вчера
	yesterday := boundary.AddDate(0, 0, -1)
	last := statsHours[len(statsHours)-1]
	return time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), last, 0, 0, 0, boundary.Location())
}

func formatStatsMessage(from, to time.Time, stats *usecase.StatsRes) string {
	return formatStatsBody(
		fmt.Sprintf("📊 Сводка заказов %s — %s", from.Format("02.01 15:04"), to.Format("15:04")),
		stats,
	)
}

func formatWeeklyStatsMessage(from, to time.Time, stats *usecase.StatsRes) string {
	return formatStatsBody(
		fmt.Sprintf("📈 Сводка за неделю %s — %s", from.Format("02.01"), to.Format("02.01")),
		stats,
	)
}

func formatStatsBody(title string, stats *usecase.StatsRes) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", title)

	products := make([]usecase.ProductStat, len(stats.Products))
	copy(products, stats.Products)
	sort.Slice(products, func(i, j int) bool { return products[i].Quantity > products[j].Quantity })

	for _, stat := range products {
		fmt.Fprintf(&b, "• %s — %d шт, %s сум\n", stat.Name, stat.Quantity, FormatSum(stat.Total))
	}

	fmt.Fprintf(&b, "\nЗаказов: %d\nВыручка: %s сум", stats.TotalOrders, FormatSum(stats.TotalSum))

	return b.String()
}

// nextWeeklyBoundary возвращает ближайший будущий момент еженедельной сводки.
func nextWeeklyBoundary(now time.Time) time.Time {
	days := (int(weeklyReportDay) - int(now.Weekday()) + 7) % 7
	boundary := time.Date(now.Year(), now.Month(), now.Day()+days, weeklyReportHour, 0, 0, 0, now.Location())
	if !boundary.After(now) {
		boundary = boundary.AddDate(0, 0, 7)
	}
	return boundary
}
