package create_review

import (
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// CreateReviewRequest модель HTTP запроса на создание отзыва
type CreateReviewRequest struct {
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	WouldRecommend bool   `json:"would_recommend"`
	ServiceQuality *int   `json:"service_quality,omitempty"`
	WaitingTime    *int   `json:"waiting_time,omitempty"`
	ValueForMoney  *int   `json:"value_for_money,omitempty"`
}

// ReviewResponse представление отзыва в API
type ReviewResponse struct {
	ID             string `json:"id"`
	BookingID      string `json:"booking_id"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	WouldRecommend bool   `json:"would_recommend"`
	ServiceQuality *int   `json:"service_quality,omitempty"`
	WaitingTime    *int   `json:"waiting_time,omitempty"`
	ValueForMoney  *int   `json:"value_for_money,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// NewReviewResponse собирает представление отзыва для API
func NewReviewResponse(rv *domain.BookingReview) ReviewResponse {
	return ReviewResponse{
		ID:             rv.ID.String(),
		BookingID:      rv.BookingID.String(),
		Rating:         rv.Rating,
		Comment:        rv.Comment,
		WouldRecommend: rv.WouldRecommend,
		ServiceQuality: rv.ServiceQuality,
		WaitingTime:    rv.WaitingTime,
		ValueForMoney:  rv.ValueForMoney,
		CreatedAt:      rv.CreatedAt.Format(time.RFC3339),
	}
}
