package models

import (
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Request модели

// SearchRequest параметры поиска бронирований, все поля опциональны
type SearchRequest struct {
	Date     *string `json:"date,omitempty"`     // YYYY-MM-DD
	Month    *string `json:"month,omitempty"`    // YYYY-MM
	TimeSlot *string `json:"timeSlot,omitempty"` // morning | afternoon
	Query    string  `json:"q,omitempty"`        // подстрока организации, контакта или телефона
}

// Response модели

// ReservationResponse бронирование
type ReservationResponse struct {
	ID                  string    `json:"id"`
	Date                string    `json:"date"`
	TimeSlot            string    `json:"timeSlot"`
	OrganizationName    string    `json:"organizationName"`
	ContactName         string    `json:"contactName"`
	Phone               string    `json:"phone"`
	Participants        int       `json:"participants"`
	DesiredActivity     string    `json:"desiredActivity"`
	ParentParticipation string    `json:"parentParticipation"`
	Notes               *string   `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// Конвертеры

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                  r.ID,
		Date:                r.Date.Format(domain.DateFormat),
		TimeSlot:            string(r.TimeSlot),
		OrganizationName:    r.OrganizationName,
		ContactName:         r.ContactName,
		Phone:               r.Phone,
		Participants:        r.Participants,
		DesiredActivity:     string(r.DesiredActivity),
		ParentParticipation: string(r.ParentParticipation),
		Notes:               r.Notes,
		CreatedAt:           r.CreatedAt,
	}
}

// FromDomainReservations конвертирует список бронирований
func FromDomainReservations(list []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		result.Reservations = append(result.Reservations, FromDomainReservation(r))
	}
	return result
}

// ToDomainFilter разбирает параметры поиска в domain.ReservationFilter
func (r *SearchRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter

	if r.Date != nil && *r.Date != "" {
		d, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &d
	}

	if r.Month != nil && *r.Month != "" {
		m, err := domain.ParseYearMonth(*r.Month)
		if err != nil {
			return filter, err
		}
		filter.Month = &m
	}

	if r.TimeSlot != nil && *r.TimeSlot != "" {
		ts, err := domain.ParseTimeSlot(*r.TimeSlot)
		if err != nil {
			return filter, err
		}
		filter.TimeSlot = &ts
	}

	filter.Query = r.Query
	return filter, nil
}
