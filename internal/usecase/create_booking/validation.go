package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientID) == "" {
		return fmt.Errorf("%w: patientID is required (use %q for new patients)", ErrInvalidInput, domain.NewPatientID)
	}

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is longer than %d characters", ErrInvalidInput, domain.MaxPatientNameLength)
	}

	if strings.TrimSpace(req.ProviderID) == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if !req.VisitKind.IsValid() {
		return fmt.Errorf("%w: unknown visit kind %q", ErrInvalidInput, req.VisitKind)
	}

	for field, value := range map[string]string{
		"insurance.carrier":  req.Insurance.Carrier,
		"insurance.memberId": req.Insurance.MemberID,
		"insurance.group":    req.Insurance.Group,
	} {
		if utf8.RuneCountInString(value) > domain.MaxInsuranceField {
			return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, field, domain.MaxInsuranceField)
		}
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveWindow сопоставляет окно [start, end) с k базовыми слотами дня.
// Слоты должны существовать, идти встык и находиться в одном кабинете.
// Занятость здесь не проверяется - это делает TryReserve под блокировкой.
func resolveWindow(day []*domain.BaseSlot, start, end types.TimeString, k int) ([]types.TimeString, *domain.SlotWindow, error) {
	first := -1
	for i, s := range day {
		if s.StartTime.Equal(start) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, nil, fmt.Errorf("%w: no slot starts at %s", ErrInvalidWindow, start)
	}
	if first+k > len(day) {
		return nil, nil, fmt.Errorf("%w: not enough slots after %s", ErrInvalidWindow, start)
	}

	run := day[first : first+k]
	starts := make([]types.TimeString, 0, k)
	for i, s := range run {
		if i > 0 {
			prev := run[i-1]
			if !prev.Precedes(s) {
				return nil, nil, fmt.Errorf("%w: gap between %s and %s", ErrInvalidWindow, prev.EndTime, s.StartTime)
			}
			if prev.Location != s.Location {
				return nil, nil, fmt.Errorf("%w: window spans locations %q and %q", ErrInvalidWindow, prev.Location, s.Location)
			}
		}
		starts = append(starts, s.StartTime)
	}

	last := run[len(run)-1]
	if length := last.EndTime.Minutes() - run[0].StartTime.Minutes(); length != k*domain.BaseSlotMinutes {
		return nil, nil, fmt.Errorf("%w: window %s-%s is %d minutes, visit needs %d",
			ErrInvalidWindow, run[0].StartTime, last.EndTime, length, k*domain.BaseSlotMinutes)
	}
	if !end.IsZero() && !end.Equal(last.EndTime) {
		return nil, nil, fmt.Errorf("%w: window %s-%s does not match %d slot(s) ending at %s",
			ErrInvalidWindow, start, end, k, last.EndTime)
	}

	return starts, &domain.SlotWindow{
		ProviderID: run[0].ProviderID,
		Date:       run[0].Date,
		StartTime:  run[0].StartTime,
		EndTime:    last.EndTime,
		Location:   run[0].Location,
	}, nil
}
