package venuecatalog

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venuecatalog client: venue not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venuecatalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("venuecatalog client: invalid response")
)
