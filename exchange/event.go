// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/adapter"
	"github.com/exchangekit/go-ews/internal/soap"
	"github.com/exchangekit/go-ews/internal/tracker"
	"github.com/exchangekit/go-ews/internal/validators"
	"github.com/exchangekit/go-ews/models"
)

// ErrEventTimesRequired is returned by Validate when an event is missing its
// start or end time.
var ErrEventTimesRequired = errors.New("event start and end are required")

// EventFields is the writable field set of a calendar event, used to
// construct an unsaved event. Values set here are initial state, not edits:
// a freshly constructed event has an empty dirty set.
type EventFields struct {
	Subject      string
	Location     string
	Availability string
	HTMLBody     string
	TextBody     string
	Start        time.Time
	End          time.Time
	Reminder     int
	AllDay       bool

	Recurrence         models.RecurrencePattern
	RecurrenceInterval int
	RecurrenceDays     string
	RecurrenceEndDate  time.Time

	Attendees []models.Attendee
	Resources []models.Attendee
}

// Event is a calendar item bound to one Exchange mailbox. Field access goes
// through getters and setters: setters record the field in the dirty set,
// which Update uses to send a minimal payload. An Event is not safe for
// concurrent use.
type Event struct {
	svc        *Service
	calendarID string

	ident itemID
	dirty *tracker.Tracker

	subject      string
	location     string
	availability string
	htmlBody     string
	textBody     string
	itemType     string
	start        time.Time
	end          time.Time
	reminder     int
	allDay       bool

	recurrence         models.RecurrencePattern
	recurrenceInterval int
	recurrenceDays     string
	recurrenceEndDate  time.Time

	organizer      *models.Mailbox
	attendees      []models.Attendee
	resources      []models.Attendee
	conflictingIDs []string
}

func newEvent(svc *Service, calendarID string) *Event {
	return &Event{svc: svc, calendarID: calendarID, dirty: tracker.New()}
}

// ID is the server-assigned identifier, empty until the event is created or
// loaded.
func (e *Event) ID() string { return e.ident.id }

// ChangeKey is the optimistic-concurrency token attached to mutating calls.
func (e *Event) ChangeKey() string { return e.ident.changeKey }

// Type is the CalendarItemType reported by the server: Single, Occurrence,
// Exception or RecurringMaster.
func (e *Event) Type() string { return e.itemType }

// CalendarID is the folder the event lives in.
func (e *Event) CalendarID() string { return e.calendarID }

// DirtyFields returns the names of fields modified since the last
// synchronization point, in sorted order.
func (e *Event) DirtyFields() []string { return e.dirty.Fields() }

func (e *Event) Subject() string                      { return e.subject }
func (e *Event) Location() string                     { return e.location }
func (e *Event) Availability() string                 { return e.availability }
func (e *Event) HTMLBody() string                     { return e.htmlBody }
func (e *Event) TextBody() string                     { return e.textBody }
func (e *Event) Start() time.Time                     { return e.start }
func (e *Event) End() time.Time                       { return e.end }
func (e *Event) Reminder() int                        { return e.reminder }
func (e *Event) AllDay() bool                         { return e.allDay }
func (e *Event) Recurrence() models.RecurrencePattern { return e.recurrence }
func (e *Event) RecurrenceInterval() int              { return e.recurrenceInterval }
func (e *Event) RecurrenceDays() string               { return e.recurrenceDays }
func (e *Event) RecurrenceEndDate() time.Time         { return e.recurrenceEndDate }
func (e *Event) Organizer() *models.Mailbox           { return e.organizer }
func (e *Event) Attendees() []models.Attendee         { return e.attendees }
func (e *Event) Resources() []models.Attendee         { return e.resources }
func (e *Event) ConflictingEventIDs() []string        { return e.conflictingIDs }

func (e *Event) SetSubject(v string)      { e.subject = v; e.dirty.Record(soap.FieldSubject) }
func (e *Event) SetLocation(v string)     { e.location = v; e.dirty.Record(soap.FieldLocation) }
func (e *Event) SetAvailability(v string) { e.availability = v; e.dirty.Record(soap.FieldAvailability) }
func (e *Event) SetHTMLBody(v string)     { e.htmlBody = v; e.dirty.Record(soap.FieldHTMLBody) }
func (e *Event) SetTextBody(v string)     { e.textBody = v; e.dirty.Record(soap.FieldTextBody) }
func (e *Event) SetStart(v time.Time)     { e.start = v; e.dirty.Record(soap.FieldStart) }
func (e *Event) SetEnd(v time.Time)       { e.end = v; e.dirty.Record(soap.FieldEnd) }
func (e *Event) SetReminder(v int)        { e.reminder = v; e.dirty.Record(soap.FieldReminder) }
func (e *Event) SetAllDay(v bool)         { e.allDay = v; e.dirty.Record(soap.FieldAllDay) }

func (e *Event) SetRecurrence(v models.RecurrencePattern) {
	e.recurrence = v
	e.dirty.Record(soap.FieldRecurrence)
}

func (e *Event) SetRecurrenceInterval(v int) {
	e.recurrenceInterval = v
	e.dirty.Record(soap.FieldRecurrenceInterval)
}

func (e *Event) SetRecurrenceDays(v string) {
	e.recurrenceDays = v
	e.dirty.Record(soap.FieldRecurrenceDays)
}

func (e *Event) SetRecurrenceEndDate(v time.Time) {
	e.recurrenceEndDate = v
	e.dirty.Record(soap.FieldRecurrenceEndDate)
}

func (e *Event) SetAttendees(v []models.Attendee) {
	e.attendees = v
	e.dirty.Record(soap.FieldAttendees)
}

func (e *Event) SetResources(v []models.Attendee) {
	e.resources = v
	e.dirty.Record(soap.FieldResources)
}

func (e *Event) applyFields(f EventFields) {
	e.dirty.Suspend(func() {
		e.SetSubject(f.Subject)
		e.SetLocation(f.Location)
		e.SetAvailability(f.Availability)
		e.SetHTMLBody(f.HTMLBody)
		e.SetTextBody(f.TextBody)
		e.SetStart(f.Start)
		e.SetEnd(f.End)
		e.SetReminder(f.Reminder)
		e.SetAllDay(f.AllDay)
		e.SetRecurrence(f.Recurrence)
		e.SetRecurrenceInterval(f.RecurrenceInterval)
		e.SetRecurrenceDays(f.RecurrenceDays)
		e.SetRecurrenceEndDate(f.RecurrenceEndDate)
		e.SetAttendees(f.Attendees)
		e.SetResources(f.Resources)
	})
}

// render snapshots the event for the request builders.
func (e *Event) render() soap.Event {
	return soap.Event{
		CalendarID:         e.calendarID,
		Subject:            e.subject,
		Location:           e.location,
		Availability:       e.availability,
		HTMLBody:           e.htmlBody,
		TextBody:           e.textBody,
		Start:              e.start,
		End:                e.end,
		Reminder:           e.reminder,
		AllDay:             e.allDay,
		Recurrence:         e.recurrence,
		RecurrenceInterval: e.recurrenceInterval,
		RecurrenceDays:     e.recurrenceDays,
		RecurrenceEndDate:  e.recurrenceEndDate,
		Attendees:          e.attendees,
		Resources:          e.resources,
	}
}

// Validate runs the pre-flight checks Create and Update perform before any
// request is sent.
func (e *Event) Validate() error {
	if e.start.IsZero() || e.end.IsZero() {
		return ErrEventTimesRequired
	}
	if e.recurrence == "" {
		return nil
	}
	return validators.ValidateRecurrence(validators.Recurrence{
		Pattern:  e.recurrence,
		Interval: e.recurrenceInterval,
		Days:     e.recurrenceDays,
		EndDate:  e.recurrenceEndDate,
		Start:    e.start,
	})
}

// Create persists an unsaved event. Invitations to attendees are sent out
// immediately. A create always submits the full field state, never the
// dirty subset.
func (e *Event) Create(ctx context.Context) error {
	if e.ident.persisted() {
		return fmt.Errorf("create event: %w", ErrAlreadyPersisted)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	response, err := e.svc.transport.Send(ctx, soap.CreateEvent(e.render()))
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	ident := parseIDAttrs(response.FindElement("//m:Items/t:CalendarItem/t:ItemId"))
	if !ident.persisted() {
		return fmt.Errorf("create event: %w", ErrIncompleteResponse)
	}
	e.ident = ident
	e.dirty.Reset()

	e.svc.log.Debug().Str("event_id", e.ident.id).Msg("event created")
	return nil
}

// Update flushes the modified fields to the server, notifying recipients
// according to scope (pass "" for SendToAllAndSaveCopy). With nothing
// modified it does nothing at all: no round trip, nobody re-notified. The
// change key is refreshed immediately before the write; if it still comes
// back stale the refresh-and-send is repeated once before the failure is
// surfaced.
func (e *Event) Update(ctx context.Context, scope models.NotificationScope) error {
	if !e.ident.persisted() {
		return fmt.Errorf("update event: %w", ErrNotPersisted)
	}
	if scope == "" {
		scope = models.SendToAllAndSaveCopy
	}
	if !scope.Valid() {
		return fmt.Errorf("update event: %w: %q", ErrInvalidScope, scope)
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	if !e.dirty.Dirty() {
		e.svc.log.Info().Str("event_id", e.ident.id).Msg("update called with no changes, doing nothing")
		return nil
	}

	dirty := e.dirty.Fields()
	e.svc.log.Debug().Strs("fields", dirty).Msg("updating event")

	_, err := e.mutate(ctx, func() *etree.Element {
		return soap.UpdateEvent(e.ident.id, e.ident.changeKey, e.render(), dirty, scope)
	})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	e.dirty.Reset()
	return nil
}

// Cancel removes the event from the calendar and notifies everyone who has
// not declined. The local id and change key are cleared; calling Cancel
// again fails with ErrNotPersisted rather than silently succeeding.
func (e *Event) Cancel(ctx context.Context) error {
	if !e.ident.persisted() {
		return fmt.Errorf("cancel event: %w", ErrNotPersisted)
	}

	_, err := e.mutate(ctx, func() *etree.Element {
		return soap.DeleteEvent(e.ident.id, e.ident.changeKey)
	})
	if err != nil {
		return fmt.Errorf("cancel event: %w", err)
	}

	e.ident = itemID{}
	return nil
}

// MoveTo moves the event into another calendar folder. The server assigns
// the moved item a new id and change key; both replace the local copies and
// the event is rebound to folderID.
func (e *Event) MoveTo(ctx context.Context, folderID string) error {
	if folderID == "" {
		return fmt.Errorf("move event: %w", ErrMissingFolderID)
	}
	if !e.ident.persisted() {
		return fmt.Errorf("move event: %w", ErrNotPersisted)
	}

	response, err := e.mutate(ctx, func() *etree.Element {
		return soap.MoveItem(e.ident.id, e.ident.changeKey, folderID)
	})
	if err != nil {
		return fmt.Errorf("move event: %w", err)
	}

	moved := parseIDAttrs(response.FindElement("//m:Items/t:CalendarItem/t:ItemId"))
	if !moved.persisted() {
		return fmt.Errorf("move event: MoveItem returned success but requested item not moved: %w", ErrIncompleteResponse)
	}

	e.ident = moved
	e.calendarID = folderID
	return nil
}

// ResendInvitations re-sends the invite to anybody who has not declined.
// Under the hood this is an update with zero field changes and the
// notify-all scope; to keep intent-to-notify separate from intent-to-edit it
// refuses to run while there are unsaved changes.
func (e *Event) ResendInvitations(ctx context.Context) error {
	if !e.ident.persisted() {
		return fmt.Errorf("resend invitations: %w", ErrNotPersisted)
	}
	if e.dirty.Dirty() {
		return fmt.Errorf("resend invitations: %w: %v", ErrUnsavedChanges, e.dirty.Fields())
	}

	_, err := e.mutate(ctx, func() *etree.Element {
		return soap.UpdateEvent(e.ident.id, e.ident.changeKey, e.render(), nil, models.SendOnlyToAll)
	})
	if err != nil {
		return fmt.Errorf("resend invitations: %w", err)
	}
	return nil
}

// RefreshChangeKey fetches the current id and change key by id and
// overwrites the local copies. The locally held key goes stale the moment
// the server state changes for any reason, including other sessions, so
// every mutating operation other than create calls this first.
func (e *Event) RefreshChangeKey(ctx context.Context) error {
	response, err := e.svc.transport.Send(ctx, soap.GetItem([]string{e.ident.id}, soap.ShapeIDOnly))
	if err != nil {
		return fmt.Errorf("refresh change key: %w", err)
	}

	ident := parseIDAttrs(response.FindElement("//m:Items/t:CalendarItem/t:ItemId"))
	if !ident.persisted() {
		return fmt.Errorf("refresh change key: %w", ErrIncompleteResponse)
	}
	e.ident = ident
	return nil
}

// mutate is the refresh-then-act step shared by every mutating operation:
// refresh the change key, send the request built by build (which reads the
// refreshed key), and if the server still rejects the key as stale, refresh
// and retry exactly once.
func (e *Event) mutate(ctx context.Context, build func() *etree.Element) (*etree.Document, error) {
	if err := e.RefreshChangeKey(ctx); err != nil {
		return nil, err
	}

	response, err := e.svc.transport.Send(ctx, build())
	if errors.Is(err, adapter.ErrStaleChangeKey) {
		if err = e.RefreshChangeKey(ctx); err != nil {
			return nil, err
		}
		response, err = e.svc.transport.Send(ctx, build())
	}
	return response, err
}

// GetMaster returns the recurring master this occurrence belongs to. It can
// only be called on an event of type Occurrence.
func (e *Event) GetMaster(ctx context.Context) (*Event, error) {
	if e.itemType != models.EventTypeOccurrence {
		return nil, fmt.Errorf("get master: %w: have %q, want %q", ErrInvalidEventType, e.itemType, models.EventTypeOccurrence)
	}

	response, err := e.svc.transport.Send(ctx, soap.GetMaster(e.ident.id, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get master: %w", err)
	}

	master := newEvent(e.svc, e.calendarID)
	if err = master.hydrateFromGetResponse(response); err != nil {
		return nil, fmt.Errorf("get master: %w", err)
	}
	return master, nil
}

// GetOccurrence resolves occurrence indexes of a recurring master into
// events. Indexes outside the recurrence range are skipped by the server
// and simply missing from the result; the call is only valid on an event of
// type RecurringMaster.
func (e *Event) GetOccurrence(ctx context.Context, indexes []int) ([]*Event, error) {
	if e.itemType != models.EventTypeRecurringMaster {
		return nil, fmt.Errorf("get occurrence: %w: have %q, want %q", ErrInvalidEventType, e.itemType, models.EventTypeRecurringMaster)
	}

	response, err := e.svc.transport.Send(ctx, soap.GetOccurrence(e.ident.id, indexes, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get occurrence: %w", err)
	}
	return e.svc.eventsFromResponse(response, e.calendarID)
}

// ConflictingEvents fetches the events the server reported as conflicting
// with this one. Returns an empty slice when there are no conflicts, without
// a round trip.
func (e *Event) ConflictingEvents(ctx context.Context) ([]*Event, error) {
	if len(e.conflictingIDs) == 0 {
		return nil, nil
	}

	response, err := e.svc.transport.Send(ctx, soap.GetItem(e.conflictingIDs, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("conflicting events: %w", err)
	}
	return e.svc.eventsFromResponse(response, e.calendarID)
}

// eventsFromResponse builds one event per calendar item found in a GetItem
// response, skipping fragments the server returned without an id.
func (s *Service) eventsFromResponse(response *etree.Document, calendarID string) ([]*Event, error) {
	var events []*Event
	for _, item := range response.FindElements("//m:Items/t:CalendarItem") {
		event := newEvent(s, calendarID)
		if err := event.hydrate(wrapFragment(item)); err != nil {
			return nil, err
		}
		if event.ident.persisted() {
			events = append(events, event)
		}
	}
	return events, nil
}
