package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifyservice client: invalid response")
)

// publishTimeout таймаут асинхронной доставки события,
// не привязан к времени жизни исходного запроса
const publishTimeout = 10 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// eventPayload формат события для NotificationService
type eventPayload struct {
	Type          string  `json:"type"`
	BookingID     string  `json:"booking_id"`
	GarageID      int64   `json:"garage_id"`
	GarageName    string  `json:"garage_name"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	ServiceName   *string `json:"service_name,omitempty"`
	BookingDate   string  `json:"booking_date"`
	BookingTime   string  `json:"booking_time"`
	OccurredAt    string  `json:"occurred_at"`
}

// Client клиент NotificationService. Ядро бронирования публикует доменные
// события (создание, подтверждение, завершение, отмена), письма отправляет
// сам NotificationService.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Publish синхронно отправляет событие в NotificationService
func (c *Client) Publish(ctx context.Context, event domain.BookingEvent) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	payload := eventPayload{
		Type:          string(event.Type),
		BookingID:     event.BookingID.String(),
		GarageID:      event.GarageID,
		GarageName:    event.GarageName,
		CustomerName:  event.CustomerName,
		CustomerEmail: event.CustomerEmail,
		ServiceName:   event.ServiceName,
		BookingDate:   event.BookingDate.Format(domain.DateFormat),
		BookingTime:   event.BookingTime,
		OccurredAt:    event.OccurredAt.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// PublishAsync отправляет событие в фоне, не блокируя вызывающий запрос.
// Ошибка доставки логируется и никогда не влияет на исход операции ядра.
func (c *Client) PublishAsync(event domain.BookingEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := c.Publish(ctx, event); err != nil {
			c.log.Error("PublishAsync: failed to deliver %s event for booking=%s: %v",
				event.Type, event.BookingID, err)
			return
		}

		c.log.Info("PublishAsync: delivered %s event for booking=%s", event.Type, event.BookingID)
	}()
}
