// Package lounge репозиторий лаунжей. Движок бронирования только читает
// лаунжи; создаются они администратором напрямую в базе.
package lounge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	"github.com/m04kA/SMC-LoungeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LoungeService/pkg/psqlbuilder"
)

// Repository репозиторий лаунжей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лаунжей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает лаунж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lounge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "number").
		From("lounges").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.Lounge
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLoungeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lounge: %v", ErrScanRow, err)
	}

	return &l, nil
}

// GetByNumber получает лаунж по номеру
func (r *Repository) GetByNumber(ctx context.Context, number int) (*domain.Lounge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "number").
		From("lounges").
		Where(squirrel.Eq{"number": number}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.Lounge
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLoungeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan lounge: %v", ErrScanRow, err)
	}

	return &l, nil
}

// List получает все лаунжи, упорядоченные по номеру
func (r *Repository) List(ctx context.Context) ([]*domain.Lounge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "number").
		From("lounges").
		OrderBy("number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lounges := make([]*domain.Lounge, 0)
	for rows.Next() {
		var l domain.Lounge
		if err := rows.Scan(&l.ID, &l.Number); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		lounges = append(lounges, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return lounges, nil
}
