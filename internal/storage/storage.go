// Package storage объявляет ошибки хранилища, общие для реализаций.
package storage

import "errors"

var (
	// ErrNotFound - запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken - email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already in use")
	// ErrCourseHasPurchases - курс куплен и не может быть удалён.
	ErrCourseHasPurchases = errors.New("course has purchases")
	// ErrLessonNotFound - урок не принадлежит курсу.
	ErrLessonNotFound = errors.New("lesson not found in course")
)
