package chaletservice

import "errors"

var (
	// ErrChaletNotFound возвращается, когда шале нет в каталоге
	ErrChaletNotFound = errors.New("chaletservice client: chalet not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("chaletservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("chaletservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Каталог недоступен, вызывающий код использует значения по умолчанию (полную стоимость брони)
	ErrServiceDegraded = errors.New("chaletservice unavailable: graceful degradation applied")
)
