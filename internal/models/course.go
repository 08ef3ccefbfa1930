package models

import "time"

// Course - продаваемый курс. EducatorID - идентификатор владельца.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"naziv"`
	Description string    `json:"opis"`
	Price       float64   `json:"cena"`
	Category    string    `json:"kategorija"`
	CoverImage  string    `json:"slika"`
	EducatorID  string    `json:"edukator"`
	CreatedAt   time.Time `json:"datumKreiranja"`
}

// Lesson - видеоурок курса. Поле Video защищено и отдаётся только
// пользователям с полным доступом к курсу.
type Lesson struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"kursId"`
	Title       string  `json:"naziv"`
	Description string  `json:"opis"`
	Duration    float64 `json:"trajanje"`
	Video       *string `json:"video,omitempty"`
	Position    int     `json:"poredak"`
}

// CourseDetail - курс вместе с упорядоченными уроками.
type CourseDetail struct {
	Course  Course   `json:"kurs"`
	Lessons []Lesson `json:"lekcije"`
}

// CourseView - ответ детального просмотра курса.
type CourseView struct {
	Course
	Lessons   []Lesson `json:"lekcije"`
	Purchased bool     `json:"jeKupljen"`
}

// LessonInput - урок во входящем запросе. Пустой ID означает новый урок.
type LessonInput struct {
	ID          string  `json:"id,omitempty" validate:"omitempty,uuid"`
	Title       string  `json:"naziv" validate:"required"`
	Description string  `json:"opis" validate:"required"`
	Duration    float64 `json:"trajanje" validate:"gte=0"`
	Video       string  `json:"video" validate:"required"`
}

// CourseInput - запрос на создание курса.
type CourseInput struct {
	Title       string        `json:"naziv" validate:"required"`
	Description string        `json:"opis" validate:"required"`
	Price       float64       `json:"cena" validate:"required,gt=0"`
	Category    string        `json:"kategorija" validate:"required"`
	CoverImage  string        `json:"slika" validate:"required"`
	Lessons     []LessonInput `json:"lekcije" validate:"required,min=1,dive"`
}

// CourseUpdate - частичное обновление курса. Непустой список уроков
// полностью заменяет порядок уроков курса.
type CourseUpdate struct {
	Title       *string       `json:"naziv" validate:"omitempty,min=1"`
	Description *string       `json:"opis" validate:"omitempty,min=1"`
	Price       *float64      `json:"cena" validate:"omitempty,gt=0"`
	Category    *string       `json:"kategorija" validate:"omitempty,min=1"`
	CoverImage  *string       `json:"slika" validate:"omitempty,min=1"`
	Lessons     []LessonInput `json:"lekcije" validate:"omitempty,dive"`
}
