// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package soap

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exchangekit/go-ews/models"
)

func fieldURIs(op *etree.Element) []string {
	var uris []string
	for _, field := range op.FindElements(".//t:SetItemField/t:FieldURI") {
		uris = append(uris, field.SelectAttrValue("FieldURI", ""))
	}
	return uris
}

func TestUpdateEvent_PayloadScopedToDirtyFields(t *testing.T) {
	ev := Event{Subject: "Sync", Location: "Room 1"}

	op := UpdateEvent("event-1", "ck-1", ev, []string{FieldLocation, FieldSubject}, models.SendToNone)

	assert.Equal(t, "AlwaysOverwrite", op.SelectAttrValue("ConflictResolution", ""))
	assert.Equal(t, "SendToNone", op.SelectAttrValue("SendMeetingInvitationsOrCancellations", ""))

	itemID := op.FindElement(".//t:ItemChange/t:ItemId")
	require.NotNil(t, itemID)
	assert.Equal(t, "event-1", itemID.SelectAttrValue("Id", ""))
	assert.Equal(t, "ck-1", itemID.SelectAttrValue("ChangeKey", ""))

	assert.ElementsMatch(t, []string{"calendar:Location", "item:Subject"}, fieldURIs(op))
}

func TestUpdateEvent_RecurrenceFieldsCollapseToOneChange(t *testing.T) {
	ev := Event{
		Recurrence:         models.RecurrenceWeekly,
		RecurrenceInterval: 2,
		RecurrenceDays:     "Monday",
		RecurrenceEndDate:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}

	dirty := []string{FieldRecurrence, FieldRecurrenceDays, FieldRecurrenceEndDate, FieldRecurrenceInterval}
	op := UpdateEvent("event-1", "ck-1", ev, dirty, models.SendToAllAndSaveCopy)

	assert.Equal(t, []string{"calendar:Recurrence"}, fieldURIs(op),
		"every recurrence field re-renders the same Recurrence block exactly once")
}

func TestUpdateEvent_AttendeesSplitIntoTwoChanges(t *testing.T) {
	ev := Event{
		Attendees: []models.Attendee{
			{Mailbox: models.Mailbox{Email: "bob@example.com"}, Required: true},
			{Mailbox: models.Mailbox{Email: "carol@example.com"}},
		},
	}

	op := UpdateEvent("event-1", "ck-1", ev, []string{FieldAttendees}, models.SendToAllAndSaveCopy)

	assert.ElementsMatch(t, []string{"calendar:RequiredAttendees", "calendar:OptionalAttendees"}, fieldURIs(op))
}

func TestUpdateEvent_EmptyDirtyListHasNoChanges(t *testing.T) {
	op := UpdateEvent("event-1", "ck-1", Event{}, nil, models.SendOnlyToAll)

	assert.Equal(t, "SendOnlyToAll", op.SelectAttrValue("SendMeetingInvitationsOrCancellations", ""))
	assert.Empty(t, op.FindElements(".//t:SetItemField"))
	require.NotNil(t, op.FindElement(".//t:ItemChange/t:Updates"), "Updates container stays present")
}

func TestCreateEvent_SendsInvitationsAndTargetsCalendar(t *testing.T) {
	ev := Event{
		CalendarID: "calendar",
		Subject:    "Sync",
		Start:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}

	op := CreateEvent(ev)

	assert.Equal(t, string(models.SendToAllAndSaveCopy), op.SelectAttrValue("SendMeetingInvitations", ""))

	// "calendar" is a distinguished folder name, not an opaque id.
	folder := op.FindElement("./m:SavedItemFolderId/t:DistinguishedFolderId")
	require.NotNil(t, folder)
	assert.Equal(t, "calendar", folder.SelectAttrValue("Id", ""))

	item := op.FindElement("./m:Items/t:CalendarItem")
	require.NotNil(t, item)
	assert.Equal(t, "2026-09-01T10:00:00Z", item.FindElement("./t:Start").Text())
}

func TestGetItem_Shapes(t *testing.T) {
	op := GetItem([]string{"a", "b"}, ShapeIDOnly)

	shape := op.FindElement("./m:ItemShape/t:BaseShape")
	require.NotNil(t, shape)
	assert.Equal(t, "IdOnly", shape.Text())
	assert.Len(t, op.FindElements("./m:ItemIds/t:ItemId"), 2)
}

func TestGetOccurrence_OneIdPerIndex(t *testing.T) {
	op := GetOccurrence("master-1", []int{1, 3}, ShapeAllProperties)

	occurrences := op.FindElements("./m:ItemIds/t:OccurrenceItemId")
	require.Len(t, occurrences, 2)
	assert.Equal(t, "master-1", occurrences[0].SelectAttrValue("RecurringMasterId", ""))
	assert.Equal(t, "1", occurrences[0].SelectAttrValue("InstanceIndex", ""))
	assert.Equal(t, "3", occurrences[1].SelectAttrValue("InstanceIndex", ""))
}

func TestGetMaster_UsesRecurringMasterItemID(t *testing.T) {
	op := GetMaster("occurrence-1", ShapeAllProperties)

	master := op.FindElement("./m:ItemIds/t:RecurringMasterItemId")
	require.NotNil(t, master)
	assert.Equal(t, "occurrence-1", master.SelectAttrValue("OccurrenceId", ""))
}

func TestFindCalendarItems_ViewBoundsAndDelegate(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	op := FindCalendarItems("calendar", start, end, "boss@example.com")

	view := op.FindElement("./m:CalendarView")
	require.NotNil(t, view)
	assert.Equal(t, "2026-09-01T00:00:00Z", view.SelectAttrValue("StartDate", ""))
	assert.Equal(t, "2026-09-08T00:00:00Z", view.SelectAttrValue("EndDate", ""))

	mailbox := op.FindElement("./m:ParentFolderIds/t:DistinguishedFolderId/t:Mailbox/t:EmailAddress")
	require.NotNil(t, mailbox, "delegate access addresses the other mailbox's distinguished folder")
	assert.Equal(t, "boss@example.com", mailbox.Text())
}

func TestEnvelope_VersionHeader(t *testing.T) {
	doc := Envelope(GetItem([]string{"a"}, ShapeIDOnly))

	version := doc.FindElement("//soap:Header/t:RequestServerVersion")
	require.NotNil(t, version)
	assert.Equal(t, "Exchange2010", version.SelectAttrValue("Version", ""))
	require.NotNil(t, doc.FindElement("//soap:Body/m:GetItem"))
}
