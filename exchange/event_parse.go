package exchange

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/extract"
	"github.com/exchangekit/go-ews/internal/soap"
	"github.com/exchangekit/go-ews/models"
)

// eventFieldSpecs maps writable field names to their location inside a
// t:CalendarItem fragment. Paths are relative to the m:Items wrapper the
// fragment is parsed under.
var eventFieldSpecs = map[string]extract.FieldSpec{
	soap.FieldSubject:      {Path: "./t:CalendarItem/t:Subject"},
	soap.FieldLocation:     {Path: "./t:CalendarItem/t:Location"},
	soap.FieldAvailability: {Path: "./t:CalendarItem/t:LegacyFreeBusyStatus"},
	soap.FieldHTMLBody:     {Path: "./t:CalendarItem/t:Body[@BodyType='HTML']"},
	soap.FieldTextBody:     {Path: "./t:CalendarItem/t:Body[@BodyType='Text']"},
	soap.FieldStart:        {Path: "./t:CalendarItem/t:Start", Cast: extract.CastDateTime},
	soap.FieldEnd:          {Path: "./t:CalendarItem/t:End", Cast: extract.CastDateTime},
	soap.FieldReminder:     {Path: "./t:CalendarItem/t:ReminderMinutesBeforeStart", Cast: extract.CastInt},
	soap.FieldAllDay:       {Path: "./t:CalendarItem/t:IsAllDayEvent", Cast: extract.CastBool},

	soap.FieldRecurrenceInterval: {Path: "./t:CalendarItem/t:Recurrence/*/t:Interval", Cast: extract.CastInt},
	soap.FieldRecurrenceDays:     {Path: "./t:CalendarItem/t:Recurrence/*/t:DaysOfWeek"},
	soap.FieldRecurrenceEndDate:  {Path: "./t:CalendarItem/t:Recurrence/t:EndDateRecurrence/t:EndDate", Cast: extract.CastDate},

	"item_type": {Path: "./t:CalendarItem/t:CalendarItemType"},
}

// recurrencePatterns maps the server's recurrence element names to the
// pattern vocabulary.
var recurrencePatterns = map[string]models.RecurrencePattern{
	"DailyRecurrence":           models.RecurrenceDaily,
	"WeeklyRecurrence":          models.RecurrenceWeekly,
	"AbsoluteMonthlyRecurrence": models.RecurrenceMonthly,
	"AbsoluteYearlyRecurrence":  models.RecurrenceYearly,
}

var attendeeSpecs = map[string]extract.FieldSpec{
	"name":          {Path: "./t:Mailbox/t:Name"},
	"email":         {Path: "./t:Mailbox/t:EmailAddress"},
	"response":      {Path: "./t:ResponseType"},
	"last_response": {Path: "./t:LastResponseTime", Cast: extract.CastDateTime},
}

var mailboxSpecs = map[string]extract.FieldSpec{
	"name":  {Path: "./t:Name"},
	"email": {Path: "./t:EmailAddress"},
}

// hydrateFromGetResponse loads the single calendar item carried by a
// GetItem-style response body.
func (e *Event) hydrateFromGetResponse(response *etree.Document) error {
	items := response.FindElement("//m:Items")
	if items == nil || items.FindElement("./t:CalendarItem") == nil {
		return fmt.Errorf("parse calendar item: %w", ErrIncompleteResponse)
	}
	return e.hydrate(items)
}

// hydrate overwrites the event's state from a wrapped t:CalendarItem
// fragment. Bulk-loading goes through the regular setters with tracking
// suspended, so a freshly loaded event reports no unsaved changes.
func (e *Event) hydrate(root *etree.Element) error {
	values, err := extract.Properties(root, eventFieldSpecs)
	if err != nil {
		return fmt.Errorf("parse calendar item: %w", err)
	}

	e.dirty.Suspend(func() {
		e.SetSubject(values.String(soap.FieldSubject))
		e.SetLocation(values.String(soap.FieldLocation))
		e.SetAvailability(values.String(soap.FieldAvailability))
		e.SetHTMLBody(values.String(soap.FieldHTMLBody))
		e.SetTextBody(values.String(soap.FieldTextBody))
		e.SetStart(values.Time(soap.FieldStart))
		e.SetEnd(values.Time(soap.FieldEnd))
		e.SetReminder(values.Int(soap.FieldReminder))
		e.SetAllDay(values.Bool(soap.FieldAllDay))
		e.SetRecurrenceInterval(values.Int(soap.FieldRecurrenceInterval))
		e.SetRecurrenceDays(values.String(soap.FieldRecurrenceDays))
		e.SetRecurrenceEndDate(values.Time(soap.FieldRecurrenceEndDate))
		e.SetRecurrence(detectRecurrencePattern(root))
		e.SetAttendees(parseAttendees(root))
		e.SetResources(parseResources(root))
	})

	e.itemType = values.String("item_type")
	e.organizer = parseOrganizer(root)
	e.conflictingIDs = parseConflictIDs(root)
	e.ident = parseIDAttrs(root.FindElement("./t:CalendarItem/t:ItemId"))
	e.dirty.Reset()
	return nil
}

func detectRecurrencePattern(root *etree.Element) models.RecurrencePattern {
	node := root.FindElement("./t:CalendarItem/t:Recurrence")
	if node == nil {
		return ""
	}
	for _, child := range node.ChildElements() {
		if pattern, ok := recurrencePatterns[child.Tag]; ok {
			return pattern
		}
	}
	return ""
}

func parseOrganizer(root *etree.Element) *models.Mailbox {
	node := root.FindElement("./t:CalendarItem/t:Organizer/t:Mailbox")
	if node == nil {
		return nil
	}
	values, err := extract.Properties(node, mailboxSpecs)
	if err != nil || !values.Has("email") {
		return nil
	}
	return &models.Mailbox{Name: values.String("name"), Email: values.String("email")}
}

// parseAttendeeList reads t:Attendee entries under path, dropping entries
// the server returned without an email address.
func parseAttendeeList(root *etree.Element, path string, required bool) []models.Attendee {
	var attendees []models.Attendee
	for _, node := range root.FindElements(path) {
		values, err := extract.Properties(node, attendeeSpecs)
		if err != nil || !values.Has("email") {
			continue
		}
		attendee := models.Attendee{
			Mailbox:  models.Mailbox{Name: values.String("name"), Email: values.String("email")},
			Required: required,
			Response: values.String("response"),
		}
		if values.Has("last_response") {
			t := values.Time("last_response")
			attendee.LastResponse = &t
		}
		attendees = append(attendees, attendee)
	}
	return attendees
}

func parseAttendees(root *etree.Element) []models.Attendee {
	attendees := parseAttendeeList(root, "./t:CalendarItem/t:RequiredAttendees/t:Attendee", true)
	return append(attendees, parseAttendeeList(root, "./t:CalendarItem/t:OptionalAttendees/t:Attendee", false)...)
}

func parseResources(root *etree.Element) []models.Attendee {
	return parseAttendeeList(root, "./t:CalendarItem/t:Resources/t:Attendee", true)
}

func parseConflictIDs(root *etree.Element) []string {
	var ids []string
	for _, node := range root.FindElements("./t:CalendarItem/t:ConflictingMeetings/t:CalendarItem/t:ItemId") {
		if id := node.SelectAttrValue("Id", ""); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
