package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/migrations"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, migrations.Run(s.DB))
	require.NoError(t, CheckDatabaseReady(ctx, s))
	return s
}

// TestDataFactory создаёт тестовые данные.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создаёт фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создаёт пользователя с ролью role.
func (f *TestDataFactory) CreateUser(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	u, err := f.storage.CreateUser(context.Background(), models.User{
		FirstName: "Ana", LastName: "Anić", Email: email, PasswordHash: "hash", Role: role,
	})
	require.NoError(t, err)
	return u
}

// CreateCourse создаёт курс преподавателя с n уроками.
func (f *TestDataFactory) CreateCourse(t *testing.T, educatorID string, n int) string {
	t.Helper()
	lessons := make([]models.LessonInput, n)
	for i := range lessons {
		lessons[i] = models.LessonInput{
			Title: "Lekcija", Description: "Opis", Duration: 10, Video: "https://video.example/" + string(rune('a'+i)),
		}
	}
	id, err := f.storage.CreateCourse(context.Background(), models.Course{
		Title: "Šminkanje", Description: "Osnove", Price: 49.99, Category: "makeup",
		CoverImage: "https://img.example/c.png", EducatorID: educatorID,
	}, lessons)
	require.NoError(t, err)
	return id
}

// TestVerification проверяет состояние базы.
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создаёт объект проверки.
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// Count возвращает число строк запроса COUNT(*).
func (v *TestVerification) Count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, v.storage.DB.QueryRow(query, args...).Scan(&n))
	return n
}

// CourseRows возвращает число строк курса, его уроков и прогресса по ним.
func (v *TestVerification) CourseRows(t *testing.T, courseID string) (courses, lessons, progress int) {
	t.Helper()
	courses = v.Count(t, `SELECT COUNT(*) FROM courses WHERE id = $1`, courseID)
	lessons = v.Count(t, `SELECT COUNT(*) FROM lessons WHERE course_id = $1`, courseID)
	progress = v.Count(t, `SELECT COUNT(*) FROM progress pr JOIN lessons l ON l.id = pr.lesson_id WHERE l.course_id = $1`, courseID)
	return courses, lessons, progress
}
