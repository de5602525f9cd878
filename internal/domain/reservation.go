package domain

import (
	"fmt"
	"time"
)

// DesiredActivity желаемая программа посещения
type DesiredActivity string

const (
	ActivityNaturePlay DesiredActivity = "nature_play"
	ActivityCraft      DesiredActivity = "craft"
	ActivityForestWalk DesiredActivity = "forest_walk"
	ActivityUndecided  DesiredActivity = "undecided"
)

// DesiredActivities допустимые значения DesiredActivity
var DesiredActivities = []DesiredActivity{
	ActivityNaturePlay,
	ActivityCraft,
	ActivityForestWalk,
	ActivityUndecided,
}

func (a DesiredActivity) IsValid() bool {
	for _, v := range DesiredActivities {
		if a == v {
			return true
		}
	}
	return false
}

// ParentParticipation участие родителей
type ParentParticipation string

const (
	ParentParticipate    ParentParticipation = "participate"
	ParentNotParticipate ParentParticipation = "not_participate"
	ParentUndecided      ParentParticipation = "undecided"
)

// ParentParticipations допустимые значения ParentParticipation
var ParentParticipations = []ParentParticipation{
	ParentParticipate,
	ParentNotParticipate,
	ParentUndecided,
}

func (p ParentParticipation) IsValid() bool {
	for _, v := range ParentParticipations {
		if p == v {
			return true
		}
	}
	return false
}

// Reservation бронирование посещения группой
type Reservation struct {
	ID                  string // AR-YYMMDD-NNNN
	Date                time.Time
	TimeSlot            TimeSlot
	OrganizationName    string
	ContactName         string
	Phone               string
	Participants        int
	DesiredActivity     DesiredActivity
	ParentParticipation ParentParticipation
	Notes               *string
	CreatedAt           time.Time
}

// SlotKey ключ слота, к которому относится бронирование
func (r *Reservation) SlotKey() SlotKey {
	return NewSlotKey(r.Date, r.TimeSlot)
}

// FormatReservationID формирует идентификатор AR-YYMMDD-NNNN
// createdOn дата создания бронирования, seq порядковый номер за день (1..9999)
func FormatReservationID(createdOn time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", ReservationIDPrefix, createdOn.Format("060102"), seq)
}

// ReservationFilter фильтр поиска бронирований
// Все поля опциональны, пустой фильтр возвращает все бронирования
type ReservationFilter struct {
	Date     *time.Time // конкретная дата
	Month    *time.Time // любой день месяца
	TimeSlot *TimeSlot
	Query    string // подстрока организации, контактного лица или телефона
}
