// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the pre-flight checks entities run before a
// create or update round trip. Failures here are caller-input errors; they
// are raised before any request is sent.
package validators

import (
	"fmt"
	"strings"
	"time"

	"github.com/exchangekit/go-ews/models"
)

// Recurrence is the recurrence-related subset of a calendar event.
type Recurrence struct {
	Pattern  models.RecurrencePattern
	Interval int
	// Days is a space-separated weekday list, e.g. "Monday Wednesday".
	Days    string
	EndDate time.Time
	Start   time.Time
}

// ValidateRecurrence checks a configured recurrence against the bounds
// Exchange enforces: a known pattern, a bounded interval (1–999 daily,
// 1–99 weekly and monthly; yearly derives everything from the start date),
// a non-empty weekday list for weekly patterns, and an end date no earlier
// than the start.
func ValidateRecurrence(r Recurrence) error {
	switch r.Pattern {
	case models.RecurrenceDaily:
		if r.Interval < 1 || r.Interval > 999 {
			return fmt.Errorf("%w: must be 1-999 for daily, got %d", ErrRecurrenceIntervalOutOfRange, r.Interval)
		}
	case models.RecurrenceWeekly:
		if r.Interval < 1 || r.Interval > 99 {
			return fmt.Errorf("%w: must be 1-99 for weekly, got %d", ErrRecurrenceIntervalOutOfRange, r.Interval)
		}
		if strings.TrimSpace(r.Days) == "" {
			return ErrRecurrenceDaysRequired
		}
		for _, day := range strings.Fields(r.Days) {
			if !isWeekDay(day) {
				return fmt.Errorf("%w: %q", ErrUnknownRecurrenceDay, day)
			}
		}
	case models.RecurrenceMonthly:
		if r.Interval < 1 || r.Interval > 99 {
			return fmt.Errorf("%w: must be 1-99 for monthly, got %d", ErrRecurrenceIntervalOutOfRange, r.Interval)
		}
	case models.RecurrenceYearly:
		// Day and month are pulled from the event start.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRecurrence, r.Pattern)
	}

	if r.EndDate.IsZero() {
		return ErrEndDateRequired
	}
	startDay := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	if r.EndDate.Before(startDay) {
		return fmt.Errorf("%w: end %s, start %s", ErrEndDateBeforeStart,
			r.EndDate.Format("2006-01-02"), startDay.Format("2006-01-02"))
	}

	return nil
}

func isWeekDay(day string) bool {
	for _, d := range models.WeekDays {
		if day == d {
			return true
		}
	}
	return false
}

// ValidateFolder checks the required fields of a folder before creation.
func ValidateFolder(displayName, parentID string) error {
	if strings.TrimSpace(displayName) == "" {
		return ErrFolderDisplayNameRequired
	}
	if strings.TrimSpace(parentID) == "" {
		return ErrFolderParentRequired
	}
	return nil
}
