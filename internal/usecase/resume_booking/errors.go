package resume_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирования с таким номером
	// нет. Терминальная ошибка: повторы не предпринимаются
	ErrBookingNotFound = errors.New("resume_booking: booking not found")

	// ErrAccessDenied возвращается, когда email не совпадает с владельцем
	ErrAccessDenied = errors.New("resume_booking: access denied")

	// ErrGivenUp возвращается после исчерпания всех попыток.
	// Отличается от ErrBookingNotFound: бронирование может существовать,
	// но хранилище так и не ответило
	ErrGivenUp = errors.New("resume_booking: gave up after retries")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resume_booking: invalid input data")
)
