package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/pkg/dbmetrics"
	"github.com/m04kA/ForestReservationService/pkg/psqlbuilder"
)

const (
	tableName = "availability_slots"

	// insertChunkSize количество строк в одном INSERT при засеве календаря
	insertChunkSize = 500
)

var columns = []string{
	"date",
	"time_slot",
	"capacity",
	"reserved",
	"available",
	"created_at",
	"updated_at",
}

// Слоты одной даты: сначала утро, потом день
const orderBySlot = "date ASC, CASE time_slot WHEN 'morning' THEN 0 ELSE 1 END ASC"

// Repository репозиторий слотов доступности в PostgreSQL
type Repository struct {
	db DB
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Get получает слот по ключу
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{
			"date":      key.Date.Format(domain.DateFormat),
			"time_slot": string(key.TimeSlot),
		})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Get - scan slot %s: %v", ErrScanRow, key, err)
	}

	return slot, nil
}

// Create создает слот
// Возвращает storage.ErrDuplicateSlot, если слот с таким ключом уже есть
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "time_slot", "capacity", "reserved", "available").
		Values(
			slot.Date.Format(domain.DateFormat),
			string(slot.TimeSlot),
			slot.Capacity,
			slot.Reserved,
			slot.Available,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return storage.ErrDuplicateSlot
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateManyIfAbsent создает слоты, которых еще нет (ON CONFLICT DO NOTHING)
// Возвращает количество реально созданных слотов
func (r *Repository) CreateManyIfAbsent(ctx context.Context, slots []*domain.AvailabilitySlot) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var created int64
	for start := 0; start < len(slots); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(slots) {
			end = len(slots)
		}

		builder := psqlbuilder.Insert(tableName).
			Columns("date", "time_slot", "capacity", "reserved", "available")
		for _, slot := range slots[start:end] {
			builder = builder.Values(
				slot.Date.Format(domain.DateFormat),
				string(slot.TimeSlot),
				slot.Capacity,
				slot.Reserved,
				slot.Available,
			)
		}

		query, args, err := builder.Suffix("ON CONFLICT (date, time_slot) DO NOTHING").ToSql()
		if err != nil {
			return created, fmt.Errorf("%w: CreateManyIfAbsent - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return created, fmt.Errorf("%w: CreateManyIfAbsent - execute insert: %v", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("%w: CreateManyIfAbsent - rows affected: %v", ErrExecQuery, err)
		}
		created += affected
	}

	return created, nil
}

// Update атомарно применяет mutate к слоту
// Чтение (SELECT ... FOR UPDATE) и запись выполняются в одной транзакции:
// в транзакции из контекста, если она есть, иначе в собственной
func (r *Repository) Update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return r.update(ctx, key, mutate)
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("%w: Update - begin: %v", ErrTransaction, err)
	}

	slot, err := r.update(dbmetrics.WithTx(ctx, tx), key, mutate)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: Update - commit: %v", ErrTransaction, err)
	}

	return slot, nil
}

func (r *Repository) update(ctx context.Context, key domain.SlotKey, mutate domain.SlotMutator) (*domain.AvailabilitySlot, error) {
	current, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	next, err := mutate(*current)
	if err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("capacity", next.Capacity).
		Set("reserved", next.Reserved).
		Set("available", next.Available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"date":      key.Date.Format(domain.DateFormat),
			"time_slot": string(key.TimeSlot),
		}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&next.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Update - execute update %s: %v", ErrExecQuery, key, err)
	}

	return &next, nil
}

// ListByDateRange возвращает слоты с датой в [from, to)
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.Lt{"date": to.Format(domain.DateFormat)}).
		OrderBy(orderBySlot).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailabilitySlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDateRange - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}

// DeleteAll удаляет все слоты
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// Count возвращает количество слотов
func (r *Repository) Count(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build count query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var (
		slot     domain.AvailabilitySlot
		date     time.Time
		timeSlot string
	)

	err := row.Scan(
		&date,
		&timeSlot,
		&slot.Capacity,
		&slot.Reserved,
		&slot.Available,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Date = domain.NormalizeDate(date)
	slot.TimeSlot = domain.TimeSlot(timeSlot)

	return &slot, nil
}
