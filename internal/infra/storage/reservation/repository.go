package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ForestReservationService/internal/domain"
	"github.com/m04kA/ForestReservationService/internal/infra/storage"
	"github.com/m04kA/ForestReservationService/pkg/dbmetrics"
	"github.com/m04kA/ForestReservationService/pkg/psqlbuilder"
)

const (
	tableName        = "reservations"
	countersTable    = "reservation_counters"
	nextSequenceTail = "ON CONFLICT (day) DO UPDATE SET seq = reservation_counters.seq + 1 RETURNING seq"
)

var columns = []string{
	"id",
	"date",
	"time_slot",
	"organization_name",
	"contact_name",
	"phone",
	"participants",
	"desired_activity",
	"parent_participation",
	"notes",
	"created_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование
// Слот, к которому относится бронирование, должен существовать (внешний ключ)
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"date",
			"time_slot",
			"organization_name",
			"contact_name",
			"phone",
			"participants",
			"desired_activity",
			"parent_participation",
			"notes",
		).
		Values(
			res.ID,
			res.Date.Format(domain.DateFormat),
			string(res.TimeSlot),
			res.OrganizationName,
			res.ContactName,
			res.Phone,
			res.Participants,
			string(res.DesiredActivity),
			string(res.ParentParticipation),
			res.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt); err != nil {
		if storage.IsUniqueViolation(err) {
			return storage.ErrDuplicateReservation
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// NextSequence возвращает следующий порядковый номер бронирования за день (начиная с 1)
// Счетчик хранится в reservation_counters и увеличивается атомарно (upsert)
func (r *Repository) NextSequence(ctx context.Context, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(countersTable).
		Columns("day", "seq").
		Values(day.Format(domain.DateFormat), 1).
		Suffix(nextSequenceTail).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: NextSequence - build upsert query: %v", ErrBuildQuery, err)
	}

	var seq int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: NextSequence - execute upsert: %v", ErrExecQuery, err)
	}

	return seq, nil
}

// GetByID получает бронирование по идентификатору
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Search ищет бронирования по фильтру
// Результат отсортирован по дате, слоту и идентификатору
func (r *Repository) Search(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("date ASC", "CASE time_slot WHEN 'morning' THEN 0 ELSE 1 END ASC", "id ASC")

	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": filter.Date.Format(domain.DateFormat)})
	}

	if filter.Month != nil {
		from, to := domain.MonthRange(*filter.Month)
		builder = builder.
			Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
			Where(squirrel.Lt{"date": to.Format(domain.DateFormat)})
	}

	if filter.TimeSlot != nil {
		builder = builder.Where(squirrel.Eq{"time_slot": string(*filter.TimeSlot)})
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := storage.ContainsPattern(q)
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"organization_name": pattern},
			squirrel.ILike{"contact_name": pattern},
			squirrel.ILike{"phone": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows iteration: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return storage.ErrReservationNotFound
	}

	return nil
}

// DeleteAll удаляет все бронирования
// Счетчики идентификаторов не сбрасываются
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                 domain.Reservation
		date                time.Time
		timeSlot            string
		desiredActivity     string
		parentParticipation string
		notes               sql.NullString
	)

	err := row.Scan(
		&res.ID,
		&date,
		&timeSlot,
		&res.OrganizationName,
		&res.ContactName,
		&res.Phone,
		&res.Participants,
		&desiredActivity,
		&parentParticipation,
		&notes,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.NormalizeDate(date)
	res.TimeSlot = domain.TimeSlot(timeSlot)
	res.DesiredActivity = domain.DesiredActivity(desiredActivity)
	res.ParentParticipation = domain.ParentParticipation(parentParticipation)
	if notes.Valid {
		res.Notes = &notes.String
	}

	return &res, nil
}
