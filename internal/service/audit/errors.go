package audit

import "errors"

var (
	// ErrAccessDenied журнал доступен только админам
	ErrAccessDenied = errors.New("audit: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("audit: internal error")
)
