package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// HasPurchase сообщает, покупал ли пользователь курс.
func (s *Storage) HasPurchase(ctx context.Context, userID, courseID string) (bool, error) {
	const op = "storage.HasPurchase"
	if err := ctxDone(ctx, op); err != nil {
		return false, err
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListPurchasedCourses возвращает покупки с данными курсов. Пустой userID
// возвращает покупки всех пользователей.
func (s *Storage) ListPurchasedCourses(ctx context.Context, userID string) ([]models.PurchasedCourse, error) {
	const op = "storage.ListPurchasedCourses"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.course_id, p.price::float8, p.purchased_at, `+courseColumns+`
		 FROM purchases p JOIN courses c ON c.id = p.course_id
		 WHERE ($1 = '' OR p.user_id::text = $1)
		 ORDER BY p.purchased_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.PurchasedCourse, 0)
	for rows.Next() {
		var pc models.PurchasedCourse
		c := &pc.Course
		if err := rows.Scan(&pc.ID, &pc.UserID, &pc.CourseID, &pc.Price, &pc.PurchasedAt,
			&c.ID, &c.Title, &c.Description, &c.Price, &c.Category, &c.CoverImage, &c.EducatorID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// RecordPurchases записывает покупки курсов по текущей цене курса.
// Уже купленные курсы пропускаются по уникальному ключу (user_id, course_id),
// поэтому параллельные доставки одного события не создают дубликатов.
// Возвращает id курсов, записанных этим вызовом.
func (s *Storage) RecordPurchases(ctx context.Context, userID, sessionID string, courseIDs []string) ([]string, error) {
	const op = "storage.RecordPurchases"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rollback(tx)

	inserted := make([]string, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		var id string
		err := tx.QueryRowContext(ctx,
			`INSERT INTO purchases (user_id, course_id, price, session_id)
			 SELECT $1::uuid, c.id, c.price, $3::text FROM courses c
			 WHERE c.id = $2::uuid
			 ON CONFLICT (user_id, course_id) DO NOTHING
			 RETURNING course_id::text`,
			userID, courseID, sessionID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		inserted = append(inserted, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, nil
}

// ListEducatorClients возвращает клиентов, купивших курсы преподавателя, с
// числом купленных курсов. Пустой educatorID - по всем преподавателям.
func (s *Storage) ListEducatorClients(ctx context.Context, educatorID string) ([]models.EducatorClient, error) {
	const op = "storage.ListEducatorClients"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, COUNT(DISTINCT p.course_id)
		 FROM purchases p
		 JOIN courses c ON c.id = p.course_id
		 JOIN users u ON u.id = p.user_id
		 WHERE ($1 = '' OR c.educator_id::text = $1)
		 GROUP BY u.id, u.first_name, u.last_name, u.email
		 ORDER BY COUNT(DISTINCT p.course_id) DESC, u.email`, educatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.EducatorClient, 0)
	for rows.Next() {
		var ec models.EducatorClient
		if err := rows.Scan(&ec.UserID, &ec.FirstName, &ec.LastName, &ec.Email, &ec.CoursesBought); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CourseSales возвращает выручку и число продаж по каждому курсу.
func (s *Storage) CourseSales(ctx context.Context) ([]models.CourseSales, error) {
	const op = "storage.CourseSales"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT c.id, c.title, COALESCE(SUM(p.price), 0)::float8, COUNT(p.id)
		 FROM courses c LEFT JOIN purchases p ON p.course_id = c.id
		 GROUP BY c.id, c.title
		 ORDER BY COALESCE(SUM(p.price), 0) DESC, c.title`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.CourseSales, 0)
	for rows.Next() {
		var cs models.CourseSales
		if err := rows.Scan(&cs.CourseID, &cs.Title, &cs.Revenue, &cs.Sold); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// MonthlySales возвращает продажи по календарным месяцам.
func (s *Storage) MonthlySales(ctx context.Context) ([]models.MonthlySales, error) {
	const op = "storage.MonthlySales"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT to_char(date_trunc('month', purchased_at), 'YYYY-MM'), SUM(price)::float8, COUNT(*)
		 FROM purchases
		 GROUP BY 1
		 ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.MonthlySales, 0)
	for rows.Next() {
		var ms models.MonthlySales
		if err := rows.Scan(&ms.Month, &ms.Revenue, &ms.Sold); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
