package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

const courseColumns = `c.id, c.title, c.description, c.price::float8, c.category,
	c.cover_image, c.educator_id, c.created_at`

func scanCourse(row rowScanner) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.Category,
		&c.CoverImage, &c.EducatorID, &c.CreatedAt)
	return c, err
}

func collectCourses(rows *sql.Rows, op string) ([]models.Course, error) {
	defer rows.Close()
	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return courses, nil
}

// ListCourses возвращает курсы без уроков. Непустой educatorID ограничивает
// выборку курсами этого преподавателя.
func (s *Storage) ListCourses(ctx context.Context, educatorID string) ([]models.Course, error) {
	const op = "storage.ListCourses"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + courseColumns + ` FROM courses c
			  WHERE ($1 = '' OR c.educator_id::text = $1)
			  ORDER BY c.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, educatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectCourses(rows, op)
}

// GetCoursesByIDs возвращает существующие курсы из списка идентификаторов.
func (s *Storage) GetCoursesByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	const op = "storage.GetCoursesByIDs"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses c WHERE c.id::text = ANY($1::text[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return collectCourses(rows, op)
}

// GetCourse возвращает курс без уроков.
func (s *Storage) GetCourse(ctx context.Context, id string) (models.Course, error) {
	const op = "storage.GetCourse"
	if err := ctxDone(ctx, op); err != nil {
		return models.Course{}, err
	}

	c, err := scanCourse(s.DB.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return models.Course{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCourseDetail возвращает курс с уроками, упорядоченными по позиции.
func (s *Storage) GetCourseDetail(ctx context.Context, id string) (models.CourseDetail, error) {
	const op = "storage.GetCourseDetail"

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return models.CourseDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, course_id, title, description, duration::float8, video, position
		 FROM lessons WHERE course_id = $1 ORDER BY position`, id)
	if err != nil {
		return models.CourseDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	lessons := make([]models.Lesson, 0)
	for rows.Next() {
		var l models.Lesson
		var video string
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Description, &l.Duration, &video, &l.Position); err != nil {
			return models.CourseDetail{}, fmt.Errorf("%s: %w", op, err)
		}
		l.Video = &video
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return models.CourseDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CourseDetail{Course: course, Lessons: lessons}, nil
}

// CreateCourse сохраняет курс и его уроки в одной транзакции.
// Позиция урока равна его индексу во входном списке.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course, lessons []models.LessonInput) (string, error) {
	const op = "storage.CreateCourse"
	if err := ctxDone(ctx, op); err != nil {
		return "", err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer rollback(tx)

	var id string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO courses (title, description, price, category, cover_image, educator_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		course.Title, course.Description, course.Price, course.Category, course.CoverImage, course.EducatorID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	for i, l := range lessons {
		if err := insertLesson(ctx, tx, id, l, i); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func insertLesson(ctx context.Context, tx *sql.Tx, courseID string, l models.LessonInput, position int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lessons (course_id, title, description, duration, video, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		courseID, l.Title, l.Description, l.Duration, l.Video, position)
	return err
}

// UpdateCourse обновляет поля курса и, если список уроков передан, заменяет
// уроки курса: уроки с ID обновляются, без ID добавляются, отсутствующие в
// списке удаляются вместе с их прогрессом. Позиции перенумеровываются с нуля.
// Всё выполняется в одной транзакции.
func (s *Storage) UpdateCourse(ctx context.Context, id string, upd models.CourseUpdate) error {
	const op = "storage.UpdateCourse"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx,
		`UPDATE courses SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			price       = COALESCE($4, price),
			category    = COALESCE($5, category),
			cover_image = COALESCE($6, cover_image)
		 WHERE id = $1`,
		id, upd.Title, upd.Description, upd.Price, upd.Category, upd.CoverImage)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := expectAffected(res, op); err != nil {
		return err
	}

	if len(upd.Lessons) > 0 {
		if err := replaceLessons(ctx, tx, id, upd.Lessons); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func replaceLessons(ctx context.Context, tx *sql.Tx, courseID string, lessons []models.LessonInput) error {
	keep := make([]string, 0, len(lessons))
	for _, l := range lessons {
		if l.ID != "" {
			keep = append(keep, l.ID)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM progress WHERE lesson_id IN (
			SELECT id FROM lessons WHERE course_id = $1 AND NOT (id::text = ANY($2::text[])))`,
		courseID, keep); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM lessons WHERE course_id = $1 AND NOT (id::text = ANY($2::text[]))`,
		courseID, keep); err != nil {
		return err
	}

	for i, l := range lessons {
		if l.ID == "" {
			if err := insertLesson(ctx, tx, courseID, l, i); err != nil {
				return err
			}
			continue
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE lessons SET title = $3, description = $4, duration = $5, video = $6, position = $7
			 WHERE id = $1 AND course_id = $2`,
			l.ID, courseID, l.Title, l.Description, l.Duration, l.Video, i)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrLessonNotFound
		}
	}
	return nil
}

// DeleteCourse удаляет курс без покупок вместе с уроками и прогрессом по ним.
// Курс с покупками не удаляется (storage.ErrCourseHasPurchases). Строка курса
// блокируется до конца транзакции.
func (s *Storage) DeleteCourse(ctx context.Context, id string) error {
	const op = "storage.DeleteCourse"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer rollback(tx)

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var purchased bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE course_id = $1)`, id).Scan(&purchased); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if purchased {
		return fmt.Errorf("%s: %w", op, storage.ErrCourseHasPurchases)
	}

	statements := []string{
		`DELETE FROM progress WHERE lesson_id IN (SELECT id FROM lessons WHERE course_id = $1)`,
		`DELETE FROM lessons WHERE course_id = $1`,
		`DELETE FROM courses WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
