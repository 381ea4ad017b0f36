package calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах заполнения календаря
	ErrInvalidInput = errors.New("service.calendar: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.calendar: internal error")
)
