package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/exchangekit/go-ews/models"
)

var (
	start   = time.Date(2016, 5, 20, 10, 0, 0, 0, time.UTC)
	endDate = time.Date(2016, 9, 20, 0, 0, 0, 0, time.UTC)
)

func TestValidateRecurrence_Patterns(t *testing.T) {
	tests := []struct {
		name string
		rec  Recurrence
		want error
	}{
		{
			name: "daily in range",
			rec:  Recurrence{Pattern: models.RecurrenceDaily, Interval: 999, EndDate: endDate, Start: start},
		},
		{
			name: "daily interval zero",
			rec:  Recurrence{Pattern: models.RecurrenceDaily, Interval: 0, EndDate: endDate, Start: start},
			want: ErrRecurrenceIntervalOutOfRange,
		},
		{
			name: "weekly interval above bound",
			rec:  Recurrence{Pattern: models.RecurrenceWeekly, Interval: 100, Days: "Monday", EndDate: endDate, Start: start},
			want: ErrRecurrenceIntervalOutOfRange,
		},
		{
			name: "weekly without days",
			rec:  Recurrence{Pattern: models.RecurrenceWeekly, Interval: 2, EndDate: endDate, Start: start},
			want: ErrRecurrenceDaysRequired,
		},
		{
			name: "weekly with unknown day token",
			rec:  Recurrence{Pattern: models.RecurrenceWeekly, Interval: 2, Days: "Monday Funday", EndDate: endDate, Start: start},
			want: ErrUnknownRecurrenceDay,
		},
		{
			name: "weekly valid",
			rec:  Recurrence{Pattern: models.RecurrenceWeekly, Interval: 2, Days: "Monday Wednesday Friday", EndDate: endDate, Start: start},
		},
		{
			name: "monthly valid",
			rec:  Recurrence{Pattern: models.RecurrenceMonthly, Interval: 99, EndDate: endDate, Start: start},
		},
		{
			name: "yearly ignores interval",
			rec:  Recurrence{Pattern: models.RecurrenceYearly, EndDate: endDate, Start: start},
		},
		{
			name: "unknown pattern",
			rec:  Recurrence{Pattern: "fortnightly", Interval: 1, EndDate: endDate, Start: start},
			want: ErrUnknownRecurrence,
		},
		{
			name: "missing end date",
			rec:  Recurrence{Pattern: models.RecurrenceDaily, Interval: 1, Start: start},
			want: ErrEndDateRequired,
		},
		{
			name: "end date before start",
			rec:  Recurrence{Pattern: models.RecurrenceDaily, Interval: 1, EndDate: start.AddDate(0, -1, 0), Start: start},
			want: ErrEndDateBeforeStart,
		},
		{
			name: "end date equal to start day is allowed",
			rec:  Recurrence{Pattern: models.RecurrenceDaily, Interval: 1, EndDate: time.Date(2016, 5, 20, 0, 0, 0, 0, time.UTC), Start: start},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecurrence(tt.rec)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestValidateFolder(t *testing.T) {
	assert.NoError(t, ValidateFolder("Projects", "inbox"))
	assert.ErrorIs(t, ValidateFolder("", "inbox"), ErrFolderDisplayNameRequired)
	assert.ErrorIs(t, ValidateFolder("Projects", " "), ErrFolderParentRequired)
}
