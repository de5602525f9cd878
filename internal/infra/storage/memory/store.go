package memory

import (
	"sync"

	"github.com/m04kA/ForestReservationService/internal/domain"
)

// Store хранилище в памяти процесса
// Используется для разработки и тестов; данные теряются при перезапуске
type Store struct {
	mu           sync.RWMutex
	slots        map[string]domain.AvailabilitySlot // ключ: SlotKey.String()
	reservations map[string]domain.Reservation
	counters     map[string]int // ключ: дата YYYY-MM-DD

	// txMu держит транзакция целиком, запись вне транзакции ждет ее завершения
	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:        make(map[string]domain.AvailabilitySlot),
		reservations: make(map[string]domain.Reservation),
		counters:     make(map[string]int),
	}
}

// Availability репозиторий слотов поверх хранилища
func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{store: s}
}

// Reservations репозиторий бронирований поверх хранилища
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}
