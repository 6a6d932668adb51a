package edit_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("edit_appointment: appointment not found")

	// ErrNotEditable возвращается для отмененных записей и блокировок
	ErrNotEditable = errors.New("edit_appointment: only scheduled appointments can be edited")

	// ErrServiceNotFound возвращается, когда одна из выбранных услуг не найдена
	ErrServiceNotFound = errors.New("edit_appointment: one or more selected services are invalid")

	// ErrSlotNotAvailable возвращается, когда новое время занято или пересекается с другой записью
	ErrSlotNotAvailable = errors.New("edit_appointment: this time slot is already booked")

	// ErrAccessDenied возвращается, когда редактировать пытается не админ
	ErrAccessDenied = errors.New("edit_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_appointment: internal error")
)
