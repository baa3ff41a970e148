// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/exchangekit/go-ews/internal/mock"
)

// newTestService wires a Service to a gomock transport. Tests that expect no
// network traffic simply set no expectations: any Send call fails the test.
func newTestService(t *testing.T) (*Service, *mock.MockTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)
	return NewService(transport, nil), transport
}

// respond parses fixture XML into the document form the transport returns.
func respond(t *testing.T, body string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(body))
	return doc
}

const idOnlyEventResponse = `
<m:GetItemResponse>
  <m:ResponseMessages>
    <m:GetItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-1" ChangeKey="ck-fresh"/>
        </t:CalendarItem>
      </m:Items>
    </m:GetItemResponseMessage>
  </m:ResponseMessages>
</m:GetItemResponse>`

const updateEventResponse = `
<m:UpdateItemResponse>
  <m:ResponseMessages>
    <m:UpdateItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-1" ChangeKey="ck-after-update"/>
        </t:CalendarItem>
      </m:Items>
    </m:UpdateItemResponseMessage>
  </m:ResponseMessages>
</m:UpdateItemResponse>`

const createEventResponse = `
<m:CreateItemResponse>
  <m:ResponseMessages>
    <m:CreateItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-new" ChangeKey="ck-new"/>
        </t:CalendarItem>
      </m:Items>
    </m:CreateItemResponseMessage>
  </m:ResponseMessages>
</m:CreateItemResponse>`

const deleteEventResponse = `
<m:DeleteItemResponse>
  <m:ResponseMessages>
    <m:DeleteItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
    </m:DeleteItemResponseMessage>
  </m:ResponseMessages>
</m:DeleteItemResponse>`

const moveEventResponse = `
<m:MoveItemResponse>
  <m:ResponseMessages>
    <m:MoveItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-moved" ChangeKey="ck-moved"/>
        </t:CalendarItem>
      </m:Items>
    </m:MoveItemResponseMessage>
  </m:ResponseMessages>
</m:MoveItemResponse>`

const getEventResponse = `
<m:GetItemResponse>
  <m:ResponseMessages>
    <m:GetItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-1" ChangeKey="ck-1"/>
          <t:Subject>Design review</t:Subject>
          <t:Body BodyType="HTML">&lt;b&gt;agenda&lt;/b&gt;</t:Body>
          <t:Body BodyType="Text">agenda</t:Body>
          <t:ReminderMinutesBeforeStart>15</t:ReminderMinutesBeforeStart>
          <t:Start>2026-09-01T10:00:00Z</t:Start>
          <t:End>2026-09-01T11:00:00Z</t:End>
          <t:IsAllDayEvent>false</t:IsAllDayEvent>
          <t:LegacyFreeBusyStatus>Busy</t:LegacyFreeBusyStatus>
          <t:Location>Room 4</t:Location>
          <t:CalendarItemType>RecurringMaster</t:CalendarItemType>
          <t:Organizer>
            <t:Mailbox><t:Name>Alice</t:Name><t:EmailAddress>alice@example.com</t:EmailAddress></t:Mailbox>
          </t:Organizer>
          <t:RequiredAttendees>
            <t:Attendee>
              <t:Mailbox><t:Name>Bob</t:Name><t:EmailAddress>bob@example.com</t:EmailAddress></t:Mailbox>
              <t:ResponseType>Accept</t:ResponseType>
              <t:LastResponseTime>2026-08-20T08:00:00Z</t:LastResponseTime>
            </t:Attendee>
            <t:Attendee>
              <t:Mailbox><t:Name>No Address</t:Name></t:Mailbox>
            </t:Attendee>
          </t:RequiredAttendees>
          <t:OptionalAttendees>
            <t:Attendee>
              <t:Mailbox><t:EmailAddress>carol@example.com</t:EmailAddress></t:Mailbox>
            </t:Attendee>
          </t:OptionalAttendees>
          <t:Resources>
            <t:Attendee>
              <t:Mailbox><t:Name>Projector</t:Name><t:EmailAddress>projector@example.com</t:EmailAddress></t:Mailbox>
            </t:Attendee>
          </t:Resources>
          <t:ConflictingMeetings>
            <t:CalendarItem><t:ItemId Id="conflict-1" ChangeKey="ck-c1"/></t:CalendarItem>
          </t:ConflictingMeetings>
          <t:Recurrence>
            <t:WeeklyRecurrence>
              <t:Interval>2</t:Interval>
              <t:DaysOfWeek>Monday Wednesday</t:DaysOfWeek>
            </t:WeeklyRecurrence>
            <t:EndDateRecurrence>
              <t:StartDate>2026-09-01</t:StartDate>
              <t:EndDate>2026-12-01</t:EndDate>
            </t:EndDateRecurrence>
          </t:Recurrence>
        </t:CalendarItem>
      </m:Items>
    </m:GetItemResponseMessage>
  </m:ResponseMessages>
</m:GetItemResponse>`

const findEventsResponse = `
<m:FindItemResponse>
  <m:ResponseMessages>
    <m:FindItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:RootFolder TotalItemsInView="2" IncludesLastItemInRange="true">
        <t:Items>
          <t:CalendarItem>
            <t:ItemId Id="event-1" ChangeKey="ck-1"/>
            <t:Subject>Design review</t:Subject>
            <t:Start>2026-09-01T10:00:00Z</t:Start>
            <t:End>2026-09-01T11:00:00Z</t:End>
          </t:CalendarItem>
          <t:CalendarItem>
            <t:ItemId Id="event-2" ChangeKey="ck-2"/>
            <t:Subject>Standup</t:Subject>
            <t:Start>2026-09-02T09:00:00Z</t:Start>
            <t:End>2026-09-02T09:15:00Z</t:End>
          </t:CalendarItem>
        </t:Items>
      </m:RootFolder>
    </m:FindItemResponseMessage>
  </m:ResponseMessages>
</m:FindItemResponse>`

const getTwoEventsResponse = `
<m:GetItemResponse>
  <m:ResponseMessages>
    <m:GetItemResponseMessage ResponseClass="Success">
      <m:ResponseCode>NoError</m:ResponseCode>
      <m:Items>
        <t:CalendarItem>
          <t:ItemId Id="event-1" ChangeKey="ck-1"/>
          <t:Subject>Design review</t:Subject>
          <t:Location>Room 4</t:Location>
          <t:Start>2026-09-01T10:00:00Z</t:Start>
          <t:End>2026-09-01T11:00:00Z</t:End>
        </t:CalendarItem>
        <t:CalendarItem>
          <t:ItemId Id="event-2" ChangeKey="ck-2"/>
          <t:Subject>Standup</t:Subject>
          <t:Location>Teams</t:Location>
          <t:Start>2026-09-02T09:00:00Z</t:Start>
          <t:End>2026-09-02T09:15:00Z</t:End>
        </t:CalendarItem>
      </m:Items>
    </m:GetItemResponseMessage>
  </m:ResponseMessages>
</m:GetItemResponse>`
