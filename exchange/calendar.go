// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/exchangekit/go-ews/internal/soap"
)

// CalendarService exposes the calendar operations of one folder. Obtain one
// via Service.Calendar.
type CalendarService struct {
	svc        *Service
	calendarID string
	delegate   string
}

// AsDelegate returns a copy of the service that issues folder queries
// against another mailbox the authenticated account has delegate access to.
func (c *CalendarService) AsDelegate(email string) *CalendarService {
	return &CalendarService{svc: c.svc, calendarID: c.calendarID, delegate: email}
}

// NewEvent constructs an unsaved event bound to this calendar. Call Create
// on the result to persist it.
func (c *CalendarService) NewEvent(fields EventFields) *Event {
	event := newEvent(c.svc, c.calendarID)
	event.applyFields(fields)
	return event
}

// GetEvent fetches a single event with all properties.
func (c *CalendarService) GetEvent(ctx context.Context, id string) (*Event, error) {
	response, err := c.svc.transport.Send(ctx, soap.GetItem([]string{id}, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	event := newEvent(c.svc, c.calendarID)
	if err = event.hydrateFromGetResponse(response); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListEvents queries the calendar view for events overlapping [start, end).
// The view returns summary fragments only; the returned list carries the ids
// and lazily upgrades to full detail via LoadAllDetails.
func (c *CalendarService) ListEvents(ctx context.Context, start, end time.Time) (*EventList, error) {
	response, err := c.svc.transport.Send(ctx, soap.FindCalendarItems(c.calendarID, start, end, c.delegate))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	list := &EventList{svc: c.svc, calendarID: c.calendarID}
	for _, item := range response.FindElements("//m:RootFolder/t:Items/t:CalendarItem") {
		event := newEvent(c.svc, c.calendarID)
		if err = event.hydrate(wrapFragment(item)); err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		if !event.ident.persisted() {
			continue
		}
		list.Events = append(list.Events, event)
		list.EventIDs = append(list.EventIDs, event.ident.id)
	}
	return list, nil
}

// EventList is the result of a calendar view query. Events hold whatever
// detail the view returned until LoadAllDetails replaces them with fully
// hydrated copies.
type EventList struct {
	svc        *Service
	calendarID string

	Events   []*Event
	EventIDs []string
}

// LoadAllDetails re-fetches every listed event with the full property shape
// in a single batched request and swaps the summaries out. Calling it again
// fetches again and replaces again, so it doubles as a refresh; an empty
// list never makes a round trip.
func (l *EventList) LoadAllDetails(ctx context.Context) error {
	if len(l.EventIDs) == 0 {
		return nil
	}

	response, err := l.svc.transport.Send(ctx, soap.GetItem(l.EventIDs, soap.ShapeAllProperties))
	if err != nil {
		return fmt.Errorf("load event details: %w", err)
	}

	events, err := l.svc.eventsFromResponse(response, l.calendarID)
	if err != nil {
		return fmt.Errorf("load event details: %w", err)
	}

	l.Events = events
	return nil
}
