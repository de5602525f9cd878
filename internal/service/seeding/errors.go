package seeding

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректных параметрах засева
	ErrInvalidConfig = errors.New("seeding: invalid config")

	// ErrSeedFailed возвращается, когда не удалось создать слоты
	ErrSeedFailed = errors.New("seeding: failed to seed availability")
)
