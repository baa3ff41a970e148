package validators

import "errors"

var (
	ErrUnknownRecurrence            = errors.New("recurrence received unknown value")
	ErrRecurrenceIntervalOutOfRange = errors.New("recurrence_interval out of range")
	ErrRecurrenceDaysRequired       = errors.New("recurrence_days is required")
	ErrUnknownRecurrenceDay         = errors.New("recurrence_days received unknown value")
	ErrEndDateRequired              = errors.New("recurrence_end_date is required")
	ErrEndDateBeforeStart           = errors.New("recurrence_end_date must not precede start")

	ErrFolderDisplayNameRequired = errors.New("folder has no display name")
	ErrFolderParentRequired      = errors.New("folder has no parent id")
)
