package repository

import (
	"context"
	"fmt"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

// MarkLessonComplete отмечает урок курса пройденным. Повторная отметка не
// меняет дату. Урок из другого курса даёт storage.ErrLessonNotFound.
func (s *Storage) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) error {
	const op = "storage.MarkLessonComplete"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lessons WHERE id = $1 AND course_id = $2)`,
		lessonID, courseID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, storage.ErrLessonNotFound)
	}

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO progress (user_id, lesson_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, lesson_id) DO NOTHING`, userID, lessonID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CourseProgress возвращает число пройденных уроков курса и общее число уроков.
func (s *Storage) CourseProgress(ctx context.Context, userID, courseID string) (int, int, error) {
	const op = "storage.CourseProgress"
	if err := ctxDone(ctx, op); err != nil {
		return 0, 0, err
	}

	var done, total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(pr.lesson_id), COUNT(l.id)
		 FROM lessons l
		 LEFT JOIN progress pr ON pr.lesson_id = l.id AND pr.user_id = $1
		 WHERE l.course_id = $2`, userID, courseID).Scan(&done, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return done, total, nil
}
