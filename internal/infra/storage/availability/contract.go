package availability

import (
	"context"
	"database/sql"

	"github.com/m04kA/ForestReservationService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// DB источник запросов и транзакций (*dbmetrics.DB)
type DB interface {
	DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
