package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotCompleted возвращается при попытке оставить отзыв
	// на незавершенное бронирование
	ErrBookingNotCompleted = errors.New("booking is not completed")

	// ErrAlreadyReviewed возвращается, когда отзыв на бронирование уже существует
	ErrAlreadyReviewed = errors.New("booking already reviewed")

	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review not found")

	// ErrAccessDenied возвращается, когда отзыв пытается оставить не владелец
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidRating возвращается при рейтинге вне диапазона 1..5
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews service: internal error")
)
