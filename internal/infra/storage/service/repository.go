package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	"github.com/salonbook/SalonBook-BookingService/pkg/dbmetrics"
	"github.com/salonbook/SalonBook-BookingService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"salon_id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"created_at",
}

// Repository репозиторий для чтения услуг салонов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID в рамках салона
func (r *Repository) GetByID(ctx context.Context, salonID, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.SalonID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.DurationMinutes,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time

	return &svc, nil
}

// ListBySalon возвращает услуги салона.
// Пустой результат не является ошибкой: вызывающая сторона подставляет
// дефолтный набор услуг.
func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt sql.NullTime

		if err := rows.Scan(
			&svc.ID,
			&svc.SalonID,
			&svc.Name,
			&svc.Description,
			&svc.Price,
			&svc.DurationMinutes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBySalon - scan service: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySalon - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
