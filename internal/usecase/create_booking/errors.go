package create_booking

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда хотя бы один слот окна уже занят (проигрыш гонки).
	// Вызывающий код должен повторить поиск.
	ErrSlotUnavailable = errors.New("create_booking: slot is no longer available")

	// ErrInvalidWindow возвращается, когда окно не соответствует календарю врача
	// (нет такого слота, разрыв, другой кабинет, неверная длительность, неизвестный врач)
	ErrInvalidWindow = errors.New("create_booking: invalid window")

	// ErrLedgerWriteFailed возвращается, когда не удалось записать бронирование в журнал.
	// Резервирование слотов при этом откатывается.
	ErrLedgerWriteFailed = errors.New("create_booking: ledger write failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Результаты бронирования для метрик
const (
	OutcomeConfirmed       = "confirmed"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomeInvalidWindow   = "invalid_window"
	OutcomeLedgerFailed    = "ledger_failed"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeInternal        = "internal"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeConfirmed
	case errors.Is(err, ErrSlotUnavailable):
		return OutcomeSlotUnavailable
	case errors.Is(err, ErrInvalidWindow):
		return OutcomeInvalidWindow
	case errors.Is(err, ErrLedgerWriteFailed):
		return OutcomeLedgerFailed
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return OutcomeInternal
	}
}
