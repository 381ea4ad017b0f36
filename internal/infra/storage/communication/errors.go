package communication

import "errors"

var (
	// ErrCommunicationNotFound возвращается, когда запись журнала не найдена
	ErrCommunicationNotFound = errors.New("communication.repository: communication not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("communication.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("communication.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("communication.repository: failed to scan row")
)
