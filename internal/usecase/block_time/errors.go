package block_time

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда мастер не найден
	ErrWorkerNotFound = errors.New("block_time: worker not found")

	// ErrSlotNotAvailable возвращается, когда блокируемое время пересекается с записями
	ErrSlotNotAvailable = errors.New("block_time: this time slot is already booked")

	// ErrAccessDenied возвращается, когда блокировать пытается не админ
	ErrAccessDenied = errors.New("block_time: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("block_time: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("block_time: internal error")
)
