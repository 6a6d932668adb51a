package cancel_appointment

import "errors"

var (
	// ErrAccessDenied возвращается, когда клиент отменяет чужую запись
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
