package search_reservations

import (
	"net/url"
	"strings"

	"github.com/m04kA/ForestReservationService/internal/service/reservations/models"
	"github.com/m04kA/ForestReservationService/pkg/ptr"
)

// SearchQuery параметры строки запроса
type SearchQuery struct {
	Date     string `json:"date" validate:"omitempty,date"`
	Month    string `json:"month" validate:"omitempty,yearmonth"`
	TimeSlot string `json:"timeSlot" validate:"omitempty,oneof=morning afternoon"`
	Query    string `json:"q" validate:"max=100"`
}

// ParseQuery читает параметры поиска из URL
func ParseQuery(values url.Values) *SearchQuery {
	return &SearchQuery{
		Date:     strings.TrimSpace(values.Get("date")),
		Month:    strings.TrimSpace(values.Get("month")),
		TimeSlot: strings.TrimSpace(values.Get("timeSlot")),
		Query:    strings.TrimSpace(values.Get("q")),
	}
}

// ToServiceRequest конвертирует параметры в модель сервиса
func (q *SearchQuery) ToServiceRequest() *models.SearchRequest {
	req := &models.SearchRequest{Query: q.Query}
	if q.Date != "" {
		req.Date = ptr.Ptr(q.Date)
	}
	if q.Month != "" {
		req.Month = ptr.Ptr(q.Month)
	}
	if q.TimeSlot != "" {
		req.TimeSlot = ptr.Ptr(q.TimeSlot)
	}
	return req
}
