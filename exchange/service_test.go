// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/exchangekit/go-ews/internal/soap"
	"github.com/exchangekit/go-ews/models"
)

const convertIDResponse = `
<m:ConvertIdResponse>
  <m:ResponseMessages>
    <m:ConvertIdResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:AlternateId Format="OwaId" Id="owa-id-1" Mailbox="dana@example.com"/>
    </m:ConvertIdResponseMessage>
  </m:ResponseMessages>
</m:ConvertIdResponse>`

func TestService_ConvertID(t *testing.T) {
	svc, transport := newTestService(t)

	transport.EXPECT().
		Send(gomock.Any(), opTag("m:ConvertId")).
		Return(respond(t, convertIDResponse), nil)

	converted, err := svc.ConvertID(context.Background(), "ews-id-1", "OwaId", "EwsId", "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "owa-id-1", converted)
}

func TestService_ConvertID_MissingAlternateID(t *testing.T) {
	svc, transport := newTestService(t)

	transport.EXPECT().
		Send(gomock.Any(), opTag("m:ConvertId")).
		Return(respond(t, deleteFolderResponse), nil)

	_, err := svc.ConvertID(context.Background(), "ews-id-1", "OwaId", "EwsId", "dana@example.com")
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}

// TestEvent_RenderHydrateRoundTrip feeds the XML the request builder renders
// back through the response extractor and checks the field values survive.
func TestEvent_RenderHydrateRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	original := svc.Calendar("calendar").NewEvent(EventFields{
		Subject:      "Architecture sync",
		Location:     "Room 9",
		Availability: "Tentative",
		HTMLBody:     "<p>notes</p>",
		Start:        time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC),
		End:          time.Date(2026, 9, 7, 15, 0, 0, 0, time.UTC),
		Reminder:     10,

		Recurrence:         models.RecurrenceWeekly,
		RecurrenceInterval: 2,
		RecurrenceDays:     "Monday Thursday",
		RecurrenceEndDate:  time.Date(2026, 12, 7, 0, 0, 0, 0, time.UTC),

		Attendees: []models.Attendee{
			{Mailbox: models.Mailbox{Name: "Bob", Email: "bob@example.com"}, Required: true},
			{Mailbox: models.Mailbox{Email: "carol@example.com"}},
		},
		Resources: []models.Attendee{
			{Mailbox: models.Mailbox{Name: "Projector", Email: "projector@example.com"}, Required: true},
		},
	})

	request := soap.CreateEvent(original.render())
	fragment := request.FindElement("./m:Items/t:CalendarItem")
	require.NotNil(t, fragment)

	hydrated := newEvent(svc, "calendar")
	require.NoError(t, hydrated.hydrate(wrapFragment(fragment)))

	assert.Equal(t, original.Subject(), hydrated.Subject())
	assert.Equal(t, original.Location(), hydrated.Location())
	assert.Equal(t, original.Availability(), hydrated.Availability())
	assert.Equal(t, original.HTMLBody(), hydrated.HTMLBody())
	assert.Equal(t, original.Start(), hydrated.Start())
	assert.Equal(t, original.End(), hydrated.End())
	assert.Equal(t, original.Reminder(), hydrated.Reminder())
	assert.Equal(t, original.AllDay(), hydrated.AllDay())

	assert.Equal(t, original.Recurrence(), hydrated.Recurrence())
	assert.Equal(t, original.RecurrenceInterval(), hydrated.RecurrenceInterval())
	assert.Equal(t, original.RecurrenceDays(), hydrated.RecurrenceDays())
	assert.Equal(t, original.RecurrenceEndDate(), hydrated.RecurrenceEndDate())

	require.Len(t, hydrated.Attendees(), 2)
	assert.Equal(t, "bob@example.com", hydrated.Attendees()[0].Mailbox.Email)
	assert.True(t, hydrated.Attendees()[0].Required)
	assert.Equal(t, "carol@example.com", hydrated.Attendees()[1].Mailbox.Email)
	assert.False(t, hydrated.Attendees()[1].Required)
	require.Len(t, hydrated.Resources(), 1)

	assert.Empty(t, hydrated.DirtyFields())
}
