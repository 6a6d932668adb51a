package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда одна из выбранных услуг не найдена
	ErrServiceNotFound = errors.New("create_appointment: one or more selected services are invalid")

	// ErrWorkerNotFound возвращается, когда мастер не найден
	ErrWorkerNotFound = errors.New("create_appointment: worker not found")

	// ErrSlotNotAvailable возвращается, когда время занято или пересекается с другой записью
	ErrSlotNotAvailable = errors.New("create_appointment: this time slot is already booked")

	// ErrDailyLimitExceeded возвращается, когда клиент исчерпал лимит записей на сегодня
	ErrDailyLimitExceeded = errors.New("create_appointment: daily appointment limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
