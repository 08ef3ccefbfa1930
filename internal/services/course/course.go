// Package course содержит бизнес-логику каталога курсов: просмотр с учётом
// прав доступа к урокам, изменение курсов владельцем и прогресс обучения.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/access"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/entitlement"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

// Repository определяет методы для работы с курсами в хранилище.
type Repository interface {
	ListCourses(ctx context.Context, educatorID string) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (models.Course, error)
	GetCourseDetail(ctx context.Context, id string) (models.CourseDetail, error)
	CreateCourse(ctx context.Context, course models.Course, lessons []models.LessonInput) (string, error)
	UpdateCourse(ctx context.Context, id string, upd models.CourseUpdate) error
	DeleteCourse(ctx context.Context, id string) error
	MarkLessonComplete(ctx context.Context, userID, courseID, lessonID string) error
	CourseProgress(ctx context.Context, userID, courseID string) (int, int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// EntitlementResolver определяет, есть ли у принципала полный доступ к курсу.
type EntitlementResolver interface {
	Resolve(ctx context.Context, p models.Principal, course models.Course) (entitlement.Entitlement, error)
}

// Service реализует бизнес-логику работы с курсами, включая кеширование.
type Service struct {
	repo        Repository
	cache       Cache
	entitlement EntitlementResolver
	sanitizer   *bluemonday.Policy
	cacheTTL    time.Duration
	log         *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, ent EntitlementResolver, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		cache:       cache,
		entitlement: ent,
		sanitizer:   bluemonday.UGCPolicy(),
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// CacheKey - ключ кеша детального описания курса.
func CacheKey(id string) string {
	return "kurs:" + id
}

var errCourseNotFound = apperr.NotFound("course not found")

// List возвращает каталог. Преподаватель видит только свои курсы.
func (s *Service) List(ctx context.Context, p models.Principal) ([]models.Course, error) {
	const op = "services.course.List"

	educatorID := ""
	if p.Is(models.RoleEducator) {
		educatorID = p.SubjectID
	}
	courses, err := s.repo.ListCourses(ctx, educatorID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Read возвращает курс с уроками. Ссылки на видео остаются только у
// пользователей с полным доступом к курсу.
func (s *Service) Read(ctx context.Context, p models.Principal, id string) (models.CourseView, error) {
	const op = "services.course.Read"

	detail, err := s.detail(ctx, id)
	if err != nil {
		return models.CourseView{}, err
	}

	ent, err := s.entitlement.Resolve(ctx, p, detail.Course)
	if err != nil {
		return models.CourseView{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	return models.CourseView{
		Course:    detail.Course,
		Lessons:   entitlement.RedactLessons(detail.Lessons, ent.FullAccess),
		Purchased: ent.FullAccess,
	}, nil
}

func (s *Service) detail(ctx context.Context, id string) (models.CourseDetail, error) {
	const op = "services.course.detail"
	if uuid.Validate(id) != nil {
		return models.CourseDetail{}, errCourseNotFound
	}

	var detail models.CourseDetail
	key := CacheKey(id)
	found, err := s.cache.Get(ctx, key, &detail)
	if err != nil {
		s.log.Warn("failed to read course from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return detail, nil
	}

	detail, err = s.repo.GetCourseDetail(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.CourseDetail{}, errCourseNotFound
	}
	if err != nil {
		return models.CourseDetail{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if detail.Lessons == nil {
		detail.Lessons = []models.Lesson{}
	}

	if err := s.cache.Set(ctx, key, detail, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", key), sl.Err(err))
	}
	return detail, nil
}

// Create создаёт курс от имени преподавателя-владельца.
func (s *Service) Create(ctx context.Context, p models.Principal, in models.CourseInput) (string, error) {
	const op = "services.course.Create"

	if len(in.Lessons) == 0 {
		return "", apperr.Validation("course must have at least one lesson")
	}
	for i := range in.Lessons {
		if in.Lessons[i].ID != "" {
			return "", apperr.Validation("new lessons must not carry an id")
		}
	}

	course := models.Course{
		Title:       strings.TrimSpace(in.Title),
		Description: s.sanitizer.Sanitize(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		CoverImage:  in.CoverImage,
		EducatorID:  p.SubjectID,
	}
	id, err := s.repo.CreateCourse(ctx, course, s.sanitizeLessons(in.Lessons))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.log.Info("course created", slog.String("course_id", id), slog.String("educator_id", p.SubjectID))
	return id, nil
}

// Update изменяет курс. Разрешено только владельцу.
func (s *Service) Update(ctx context.Context, p models.Principal, id string, upd models.CourseUpdate) error {
	const op = "services.course.Update"

	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(upd.Lessons))
	for _, l := range upd.Lessons {
		if l.ID == "" {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			return apperr.Validation("duplicate lesson id in request")
		}
		seen[l.ID] = struct{}{}
	}

	if upd.Description != nil {
		clean := s.sanitizer.Sanitize(*upd.Description)
		upd.Description = &clean
	}
	upd.Lessons = s.sanitizeLessons(upd.Lessons)

	err := s.repo.UpdateCourse(ctx, id, upd)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return errCourseNotFound
	case errors.Is(err, storage.ErrLessonNotFound):
		return apperr.Wrap(apperr.KindValidation, "lesson does not belong to this course", err)
	case err != nil:
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.invalidate(ctx, id)
	s.log.Info("course updated", slog.String("course_id", id))
	return nil
}

// Delete удаляет курс вместе с уроками и прогрессом. Купленный курс удалить нельзя.
func (s *Service) Delete(ctx context.Context, p models.Principal, id string) error {
	const op = "services.course.Delete"

	if _, err := s.owned(ctx, p, id); err != nil {
		return err
	}

	err := s.repo.DeleteCourse(ctx, id)
	switch {
	case errors.Is(err, storage.ErrCourseHasPurchases):
		return apperr.Wrap(apperr.KindConflict, "course has purchases and cannot be deleted", err)
	case errors.Is(err, storage.ErrNotFound):
		return errCourseNotFound
	case err != nil:
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.invalidate(ctx, id)
	s.log.Info("course deleted", slog.String("course_id", id))
	return nil
}

// owned загружает курс и проверяет, что принципал его владелец.
func (s *Service) owned(ctx context.Context, p models.Principal, id string) (models.Course, error) {
	const op = "services.course.owned"
	if uuid.Validate(id) != nil {
		return models.Course{}, errCourseNotFound
	}
	course, err := s.repo.GetCourse(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Course{}, errCourseNotFound
	}
	if err != nil {
		return models.Course{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if err := access.CheckOwner(p, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, CacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.String("course_id", id), sl.Err(err))
	}
}

func (s *Service) sanitizeLessons(lessons []models.LessonInput) []models.LessonInput {
	if lessons == nil {
		return nil
	}
	out := make([]models.LessonInput, len(lessons))
	for i, l := range lessons {
		l.Title = strings.TrimSpace(l.Title)
		l.Description = s.sanitizer.Sanitize(l.Description)
		out[i] = l
	}
	return out
}

// Progress возвращает прогресс принципала по курсу.
func (s *Service) Progress(ctx context.Context, p models.Principal, courseID string) (models.Progress, error) {
	if err := s.requireAccess(ctx, p, courseID); err != nil {
		return models.Progress{}, err
	}
	return s.progress(ctx, p.SubjectID, courseID)
}

// CompleteLesson отмечает урок пройденным. Повторная отметка ничего не меняет.
func (s *Service) CompleteLesson(ctx context.Context, p models.Principal, courseID, lessonID string) (models.Progress, error) {
	const op = "services.course.CompleteLesson"

	if err := s.requireAccess(ctx, p, courseID); err != nil {
		return models.Progress{}, err
	}
	if uuid.Validate(lessonID) != nil {
		return models.Progress{}, apperr.NotFound("lesson not found")
	}

	err := s.repo.MarkLessonComplete(ctx, p.SubjectID, courseID, lessonID)
	if errors.Is(err, storage.ErrLessonNotFound) {
		return models.Progress{}, apperr.NotFound("lesson not found")
	}
	if err != nil {
		return models.Progress{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	return s.progress(ctx, p.SubjectID, courseID)
}

func (s *Service) requireAccess(ctx context.Context, p models.Principal, courseID string) error {
	const op = "services.course.requireAccess"
	if p.IsAnonymous() {
		return apperr.Unauthenticated("authentication required")
	}
	if uuid.Validate(courseID) != nil {
		return errCourseNotFound
	}
	course, err := s.repo.GetCourse(ctx, courseID)
	if errors.Is(err, storage.ErrNotFound) {
		return errCourseNotFound
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	ent, err := s.entitlement.Resolve(ctx, p, course)
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if !ent.FullAccess {
		return apperr.Forbidden("course is not purchased")
	}
	return nil
}

func (s *Service) progress(ctx context.Context, userID, courseID string) (models.Progress, error) {
	const op = "services.course.progress"
	done, total, err := s.repo.CourseProgress(ctx, userID, courseID)
	if err != nil {
		return models.Progress{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	return models.Progress{
		CourseID:  courseID,
		Completed: done,
		Total:     total,
		Percent:   Percent(done, total),
	}, nil
}

// Percent округляет долю пройденных уроков до целого процента.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
