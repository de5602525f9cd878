package create_reservation

import (
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
	createReservation "github.com/m04kA/ForestReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP модель запроса
type CreateReservationRequest struct {
	Date                string  `json:"date" validate:"required,date"`
	TimeSlot            string  `json:"timeSlot" validate:"required,oneof=morning afternoon"`
	OrganizationName    string  `json:"organizationName" validate:"required,max=100"`
	ContactName         string  `json:"contactName" validate:"required,max=50"`
	Phone               string  `json:"phone" validate:"required,max=20,phone"`
	Participants        int     `json:"participants" validate:"required,min=1"`
	DesiredActivity     string  `json:"desiredActivity" validate:"required,oneof=nature_play craft forest_walk undecided"`
	ParentParticipation string  `json:"parentParticipation" validate:"required,oneof=participate not_participate undecided"`
	Notes               *string `json:"notes" validate:"omitempty,max=500"`
}

// ReservationResponse HTTP модель ответа
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
	RemainingPlaces     int       `json:"remainingPlaces"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат даты к этому моменту проверен валидатором
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Date:                date,
		TimeSlot:            domain.TimeSlot(r.TimeSlot),
		OrganizationName:    r.OrganizationName,
		ContactName:         r.ContactName,
		Phone:               r.Phone,
		Participants:        r.Participants,
		DesiredActivity:     domain.DesiredActivity(r.DesiredActivity),
		ParentParticipation: domain.ParentParticipation(r.ParentParticipation),
		Notes:               r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	remaining := resp.SlotCapacity - resp.SlotReserved
	if remaining < 0 {
		remaining = 0
	}

	return &ReservationResponse{
		ID:                  resp.ID,
		Date:                resp.Date.Format(domain.DateFormat),
		TimeSlot:            string(resp.TimeSlot),
		OrganizationName:    resp.OrganizationName,
		ContactName:         resp.ContactName,
		Phone:               resp.Phone,
		Participants:        resp.Participants,
		DesiredActivity:     string(resp.DesiredActivity),
		ParentParticipation: string(resp.ParentParticipation),
		Notes:               resp.Notes,
		CreatedAt:           resp.CreatedAt,
		RemainingPlaces:     remaining,
	}
}
