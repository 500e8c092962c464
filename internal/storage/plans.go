package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// scanPlan читает строку плана, разворачивая features из текста через запятую.
func scanPlan(row interface{ Scan(dest ...any) error }) (*models.Plan, error) {
	var p models.Plan
	var features sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays, &features, &p.IsActive); err != nil {
		return nil, err
	}
	if features.Valid && features.String != "" {
		for _, f := range strings.Split(features.String, ",") {
			p.Features = append(p.Features, strings.TrimSpace(f))
		}
	}
	return &p, nil
}

// ListActivePlans возвращает активные планы по возрастанию цены.
func (s *Storage) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListActivePlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, features, is_active
			  FROM plans
			  WHERE is_active = true
			  ORDER BY price ASC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetActivePlan возвращает активный план по ID. Для отсутствующего или
// деактивированного плана возвращает (nil, nil).
func (s *Storage) GetActivePlan(ctx context.Context, planID int) (*models.Plan, error) {
	const op = "storage.GetActivePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, features, is_active
			  FROM plans
			  WHERE id = $1 AND is_active = true`
	plan, err := scanPlan(s.DB.QueryRowContext(ctx, query, planID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}
