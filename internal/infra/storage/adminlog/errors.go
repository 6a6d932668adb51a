package adminlog

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("adminlog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("adminlog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("adminlog.repository: failed to scan row")

	// ErrDetails возвращается, если details не удалось сериализовать или прочитать
	ErrDetails = errors.New("adminlog.repository: invalid details")
)
