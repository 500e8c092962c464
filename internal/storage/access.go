package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// GetCurrentWindow возвращает самое свежее активное окно доступа пользователя
// вместе с названием плана. Если активного окна нет — (nil, nil).
func (s *Storage) GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessWindow, error) {
	const op = "storage.GetCurrentWindow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT w.id, w.user_uid, w.plan_id, p.name, w.start_date, w.end_date,
			      w.status, w.payment_method, w.amount_paid, w.created_at
			  FROM access_windows w
			  JOIN plans p ON w.plan_id = p.id
			  WHERE w.user_uid = $1 AND w.status = $2
			  ORDER BY w.end_date DESC
			  LIMIT 1`
	w, err := scanWindow(s.DB.QueryRowContext(ctx, query, userUID, models.WindowStatusActive))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

func scanWindow(row interface{ Scan(dest ...any) error }) (*models.AccessWindow, error) {
	var w models.AccessWindow
	var paymentMethod sql.NullString
	if err := row.Scan(&w.ID, &w.UserUID, &w.PlanID, &w.PlanName, &w.StartDate, &w.EndDate,
		&w.Status, &paymentMethod, &w.AmountPaid, &w.CreatedAt); err != nil {
		return nil, err
	}
	w.PaymentMethod = paymentMethod.String
	return &w, nil
}

// CreateWindow вставляет новое окно доступа и обновляет денормализованную
// сводку на пользователе в одной транзакции. Возвращает ID окна.
func (s *Storage) CreateWindow(ctx context.Context, window models.AccessWindow) (int, error) {
	const op = "storage.CreateWindow"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int
	insertQuery := `INSERT INTO access_windows (user_uid, plan_id, start_date, end_date,
			      status, payment_method, amount_paid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, insertQuery,
		window.UserUID, window.PlanID, window.StartDate, window.EndDate,
		window.Status, window.PaymentMethod, window.AmountPaid).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	updateQuery := `UPDATE users
			  SET premium_access_status = $1, premium_access_end_date = $2
			  WHERE uid = $3`
	if _, err := tx.ExecContext(ctx, updateQuery,
		models.AccessStatusPremium, window.EndDate, window.UserUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ExpireWindow переводит окно в статус expired и сбрасывает сводку пользователя
// на free в одной транзакции. Идемпотентно: уже не-активное окно не трогается.
func (s *Storage) ExpireWindow(ctx context.Context, windowID int, userUID string) error {
	const op = "storage.ExpireWindow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.closeWindow(ctx, op,
		`UPDATE access_windows SET status = $1 WHERE id = $2 AND status = $3`,
		[]any{models.WindowStatusExpired, windowID, models.WindowStatusActive}, userUID)
}

// CancelActiveWindows переводит активные окна пользователя в cancelled
// и сбрасывает сводку на free. Отсутствие активных окон — не ошибка.
func (s *Storage) CancelActiveWindows(ctx context.Context, userUID string) error {
	const op = "storage.CancelActiveWindows"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.closeWindow(ctx, op,
		`UPDATE access_windows SET status = $1 WHERE user_uid = $2 AND status = $3`,
		[]any{models.WindowStatusCancelled, userUID, models.WindowStatusActive}, userUID)
}

// closeWindow выполняет перевод окна в терминальный статус и сброс сводки
// одной транзакцией.
func (s *Storage) closeWindow(ctx context.Context, op, query string, args []any, userUID string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resetQuery := `UPDATE users
			  SET premium_access_status = $1, premium_access_end_date = NULL
			  WHERE uid = $2`
	if _, err := tx.ExecContext(ctx, resetQuery, models.AccessStatusFree, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListWindows возвращает всю историю окон пользователя, новые первыми,
// без фильтра по статусу.
func (s *Storage) ListWindows(ctx context.Context, userUID string) ([]*models.AccessWindow, error) {
	const op = "storage.ListWindows"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT w.id, w.user_uid, w.plan_id, p.name, w.start_date, w.end_date,
			      w.status, w.payment_method, w.amount_paid, w.created_at
			  FROM access_windows w
			  JOIN plans p ON w.plan_id = p.id
			  WHERE w.user_uid = $1
			  ORDER BY w.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AccessWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
