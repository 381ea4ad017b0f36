package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда один из запрошенных слотов отсутствует в календаре
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrConflict возвращается, когда хотя бы один слот уже занят (проигрыш гонки)
	ErrConflict = errors.New("slot.repository: slot already booked")

	// ErrInvalidSlot возвращается, когда слот не базовой длины или пересекается с соседним
	ErrInvalidSlot = errors.New("slot.repository: invalid base slot")

	// ErrTransaction возвращается, когда резервирование вызвано вне транзакции
	ErrTransaction = errors.New("slot.repository: active transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
