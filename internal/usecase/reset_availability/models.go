package reset_availability

// Response итог сброса календаря
type Response struct {
	DeletedReservations int64
	DeletedSlots        int64
	CreatedSlots        int64
}
