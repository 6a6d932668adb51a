package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда хотя бы одна из услуг не найдена
	ErrServiceNotFound = errors.New("catalog: one or more selected services are invalid")

	// ErrNoServices возвращается, когда не выбрано ни одной услуги
	ErrNoServices = errors.New("catalog: at least one service must be selected")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
