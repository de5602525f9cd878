package create_reservation

import (
	"time"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Config параметры создания бронирований
type Config struct {
	Location        *time.Location // часовой пояс для даты в идентификаторе и проверки прошедших дат
	MaxParticipants int
}

// Request модель запроса на создание бронирования
type Request struct {
	Date                time.Time       // Дата посещения (без времени)
	TimeSlot            domain.TimeSlot // morning | afternoon
	OrganizationName    string
	ContactName         string
	Phone               string
	Participants        int
	DesiredActivity     domain.DesiredActivity
	ParentParticipation domain.ParentParticipation
	Notes               *string // Дополнительные пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  string
	Date                time.Time
	TimeSlot            domain.TimeSlot
	OrganizationName    string
	ContactName         string
	Phone               string
	Participants        int
	DesiredActivity     domain.DesiredActivity
	ParentParticipation domain.ParentParticipation
	Notes               *string
	CreatedAt           time.Time

	// Состояние слота после бронирования
	SlotCapacity int
	SlotReserved int
}
