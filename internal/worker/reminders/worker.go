package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robfig/cron/v3"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, bookingID uuid.UUID) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics интерфейс счетчиков напоминаний
type Metrics interface {
	IncRemindersSent()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Worker планировщик напоминаний о завтрашних записях.
//
// По расписанию cron выбирает подтвержденные бронирования на завтра без
// отправленного напоминания, публикует событие booking-reminder и помечает
// напоминание отправленным. Ошибка по одному бронированию не прерывает
// обход остальных.
type Worker struct {
	bookings     BookingsService
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	cron     *cron.Cron
	cronSpec string
	timeout  time.Duration
}

// NewWorker создает новый экземпляр воркера напоминаний
func NewWorker(
	bookings BookingsService,
	publisher EventPublisher,
	metrics Metrics,
	cronSpec string,
	logger Logger,
) *Worker {
	return &Worker{
		bookings:     bookings,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cron:         cron.New(),
		cronSpec:     cronSpec,
		timeout:      5 * time.Minute,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (w *Worker) WithTimeProvider(tp TimeProvider) *Worker {
	w.timeProvider = tp
	return w
}

// Start регистрирует задачу в cron и запускает планировщик
func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		if err := w.RunOnce(ctx); err != nil {
			w.logger.Error("Reminders: run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminders worker: invalid cron spec %q: %w", w.cronSpec, err)
	}

	w.cron.Start()
	w.logger.Info("Reminders: worker started with spec %q", w.cronSpec)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("Reminders: worker stopped")
}

// RunOnce выполняет один проход: напоминания о записях на завтра
func (w *Worker) RunOnce(ctx context.Context) error {
	now := w.timeProvider.Now()
	tomorrow := now.AddDate(0, 0, 1)

	due, err := w.bookings.ListDueReminders(ctx, tomorrow)
	if err != nil {
		return fmt.Errorf("reminders worker: list due bookings: %w", err)
	}

	w.logger.Info("Reminders: %d bookings due for %s", len(due), tomorrow.Format(domain.DateFormat))

	var failed int
	for _, b := range due {
		if err := w.remind(ctx, b, now); err != nil {
			failed++
			w.logger.Error("Reminders: booking %s: %v", b.ID, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("reminders worker: %d of %d reminders failed", failed, len(due))
	}
	return nil
}

// remind публикует событие напоминания и помечает бронирование.
// Публикация синхронная: пометка ставится только после успешной доставки,
// иначе следующий проход повторит попытку.
func (w *Worker) remind(ctx context.Context, b *domain.Booking, now time.Time) error {
	if err := w.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventBookingReminder, b, now)); err != nil {
		return fmt.Errorf("publish reminder event: %w", err)
	}

	if err := w.bookings.MarkReminderSent(ctx, b.ID); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	w.metrics.IncRemindersSent()
	return nil
}
