package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func baseSlot(start, end string) *domain.BaseSlot {
	return &domain.BaseSlot{
		ProviderID: "dr-1",
		Date:       testDate,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Location:   "Main Clinic",
	}
}

func TestNewSlotsForDay(t *testing.T) {
	tests := []struct {
		name     string
		existing []*domain.BaseSlot
		incoming []*domain.BaseSlot
		want     []string
		wantErr  bool
	}{
		{
			name:     "empty day",
			incoming: []*domain.BaseSlot{baseSlot("09:30", "10:00"), baseSlot("09:00", "09:30")},
			want:     []string{"09:30", "09:00"},
		},
		{
			name:     "existing starts are skipped",
			existing: []*domain.BaseSlot{baseSlot("09:00", "09:30")},
			incoming: []*domain.BaseSlot{baseSlot("9:00", "9:30"), baseSlot("09:30", "10:00")},
			want:     []string{"09:30"},
		},
		{
			name:     "duplicates inside the batch",
			incoming: []*domain.BaseSlot{baseSlot("09:00", "09:30"), baseSlot("09:00", "09:30")},
			want:     []string{"09:00"},
		},
		{
			name:     "gaps are allowed",
			incoming: []*domain.BaseSlot{baseSlot("09:00", "09:30"), baseSlot("11:00", "11:30")},
			want:     []string{"09:00", "11:00"},
		},
		{
			name:     "double length",
			incoming: []*domain.BaseSlot{baseSlot("09:00", "10:00")},
			wantErr:  true,
		},
		{
			name:     "short slot",
			incoming: []*domain.BaseSlot{baseSlot("09:00", "09:15")},
			wantErr:  true,
		},
		{
			name:     "inverted slot",
			incoming: []*domain.BaseSlot{baseSlot("09:30", "09:00")},
			wantErr:  true,
		},
		{
			name:     "malformed time",
			incoming: []*domain.BaseSlot{baseSlot("nine", "09:30")},
			wantErr:  true,
		},
		{
			name:     "overlap inside the batch",
			incoming: []*domain.BaseSlot{baseSlot("09:00", "09:30"), baseSlot("09:15", "09:45")},
			wantErr:  true,
		},
		{
			name:     "overlap with an existing slot",
			existing: []*domain.BaseSlot{baseSlot("09:15", "09:45")},
			incoming: []*domain.BaseSlot{baseSlot("09:30", "10:00")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := NewSlotsForDay(tt.existing, tt.incoming)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlot)
				assert.Nil(t, added)
				return
			}

			require.NoError(t, err)
			got := make([]string, len(added))
			for i, s := range added {
				got[i] = s.StartTime.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
