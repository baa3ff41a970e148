package soap

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/models"
)

// Event is the wire-facing snapshot of a calendar event consumed by the
// CreateEvent and UpdateEvent builders. The exchange package assembles it
// from its entity state; this package only renders it.
type Event struct {
	CalendarID string

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

func calendarItemElement(ev Event) *etree.Element {
	item := etree.NewElement("t:CalendarItem")

	item.CreateElement("t:Subject").SetText(ev.Subject)
	if ev.HTMLBody != "" {
		addBody(item, "HTML", ev.HTMLBody)
	} else if ev.TextBody != "" {
		addBody(item, "Text", ev.TextBody)
	}
	if ev.Reminder > 0 {
		item.CreateElement("t:ReminderMinutesBeforeStart").SetText(strconv.Itoa(ev.Reminder))
	}
	item.CreateElement("t:Start").SetText(ev.Start.UTC().Format(timestampLayout))
	item.CreateElement("t:End").SetText(ev.End.UTC().Format(timestampLayout))
	item.CreateElement("t:IsAllDayEvent").SetText(strconv.FormatBool(ev.AllDay))
	if ev.Availability != "" {
		item.CreateElement("t:LegacyFreeBusyStatus").SetText(ev.Availability)
	}
	item.CreateElement("t:Location").SetText(ev.Location)

	if required := filterAttendees(ev.Attendees, true); len(required) > 0 {
		item.AddChild(attendeesElement("t:RequiredAttendees", required))
	}
	if optional := filterAttendees(ev.Attendees, false); len(optional) > 0 {
		item.AddChild(attendeesElement("t:OptionalAttendees", optional))
	}
	if len(ev.Resources) > 0 {
		item.AddChild(attendeesElement("t:Resources", ev.Resources))
	}
	if ev.Recurrence != "" {
		item.AddChild(recurrenceElement(ev))
	}
	return item
}

func addBody(item *etree.Element, bodyType, content string) {
	body := item.CreateElement("t:Body")
	body.CreateAttr("BodyType", bodyType)
	body.SetText(content)
}

func attendeesElement(name string, attendees []models.Attendee) *etree.Element {
	el := etree.NewElement(name)
	for _, a := range attendees {
		mailbox := el.CreateElement("t:Attendee").CreateElement("t:Mailbox")
		if a.Mailbox.Name != "" {
			mailbox.CreateElement("t:Name").SetText(a.Mailbox.Name)
		}
		mailbox.CreateElement("t:EmailAddress").SetText(a.Mailbox.Email)
	}
	return el
}

func filterAttendees(attendees []models.Attendee, required bool) []models.Attendee {
	var out []models.Attendee
	for _, a := range attendees {
		if a.Required == required {
			out = append(out, a)
		}
	}
	return out
}

func recurrenceElement(ev Event) *etree.Element {
	rec := etree.NewElement("t:Recurrence")

	switch ev.Recurrence {
	case models.RecurrenceDaily:
		pattern := rec.CreateElement("t:DailyRecurrence")
		pattern.CreateElement("t:Interval").SetText(strconv.Itoa(ev.RecurrenceInterval))
	case models.RecurrenceWeekly:
		pattern := rec.CreateElement("t:WeeklyRecurrence")
		pattern.CreateElement("t:Interval").SetText(strconv.Itoa(ev.RecurrenceInterval))
		pattern.CreateElement("t:DaysOfWeek").SetText(ev.RecurrenceDays)
	case models.RecurrenceMonthly:
		pattern := rec.CreateElement("t:AbsoluteMonthlyRecurrence")
		pattern.CreateElement("t:Interval").SetText(strconv.Itoa(ev.RecurrenceInterval))
		pattern.CreateElement("t:DayOfMonth").SetText(strconv.Itoa(ev.Start.Day()))
	case models.RecurrenceYearly:
		pattern := rec.CreateElement("t:AbsoluteYearlyRecurrence")
		pattern.CreateElement("t:DayOfMonth").SetText(strconv.Itoa(ev.Start.Day()))
		pattern.CreateElement("t:Month").SetText(ev.Start.Month().String())
	}

	bounds := rec.CreateElement("t:EndDateRecurrence")
	bounds.CreateElement("t:StartDate").SetText(ev.Start.UTC().Format(dateLayout))
	bounds.CreateElement("t:EndDate").SetText(ev.RecurrenceEndDate.Format(dateLayout))
	return rec
}

// Canonical event field names shared by the dirty tracker and the UpdateItem
// builder. The update payload is scoped to exactly these names.
const (
	FieldSubject      = "subject"
	FieldLocation     = "location"
	FieldAvailability = "availability"
	FieldHTMLBody     = "html_body"
	FieldTextBody     = "text_body"
	FieldStart        = "start"
	FieldEnd          = "end"
	FieldReminder     = "reminder_minutes_before_start"
	FieldAllDay       = "is_all_day"
	FieldAttendees    = "attendees"
	FieldResources    = "resources"

	FieldRecurrence         = "recurrence"
	FieldRecurrenceInterval = "recurrence_interval"
	FieldRecurrenceDays     = "recurrence_days"
	FieldRecurrenceEndDate  = "recurrence_end_date"
)

type fieldChange struct {
	uri   string
	value *etree.Element
}

// eventFieldChanges renders the SetItemField payloads for one dirty field.
// Most fields map to a single change; attendees split into required and
// optional lists, and every recurrence field re-renders the whole
// Recurrence block.
func eventFieldChanges(ev Event, field string) []fieldChange {
	switch field {
	case FieldSubject:
		return []fieldChange{{"item:Subject", textElement("t:Subject", ev.Subject)}}
	case FieldHTMLBody:
		body := textElement("t:Body", ev.HTMLBody)
		body.CreateAttr("BodyType", "HTML")
		return []fieldChange{{"item:Body", body}}
	case FieldTextBody:
		body := textElement("t:Body", ev.TextBody)
		body.CreateAttr("BodyType", "Text")
		return []fieldChange{{"item:Body", body}}
	case FieldReminder:
		return []fieldChange{{"item:ReminderMinutesBeforeStart", textElement("t:ReminderMinutesBeforeStart", strconv.Itoa(ev.Reminder))}}
	case FieldStart:
		return []fieldChange{{"calendar:Start", textElement("t:Start", ev.Start.UTC().Format(timestampLayout))}}
	case FieldEnd:
		return []fieldChange{{"calendar:End", textElement("t:End", ev.End.UTC().Format(timestampLayout))}}
	case FieldLocation:
		return []fieldChange{{"calendar:Location", textElement("t:Location", ev.Location)}}
	case FieldAvailability:
		return []fieldChange{{"calendar:LegacyFreeBusyStatus", textElement("t:LegacyFreeBusyStatus", ev.Availability)}}
	case FieldAllDay:
		return []fieldChange{{"calendar:IsAllDayEvent", textElement("t:IsAllDayEvent", strconv.FormatBool(ev.AllDay))}}
	case FieldAttendees:
		return []fieldChange{
			{"calendar:RequiredAttendees", attendeesElement("t:RequiredAttendees", filterAttendees(ev.Attendees, true))},
			{"calendar:OptionalAttendees", attendeesElement("t:OptionalAttendees", filterAttendees(ev.Attendees, false))},
		}
	case FieldResources:
		return []fieldChange{{"calendar:Resources", attendeesElement("t:Resources", ev.Resources)}}
	case FieldRecurrence, FieldRecurrenceInterval, FieldRecurrenceDays, FieldRecurrenceEndDate:
		return []fieldChange{{"calendar:Recurrence", recurrenceElement(ev)}}
	default:
		return nil
	}
}

func textElement(name, text string) *etree.Element {
	el := etree.NewElement(name)
	el.SetText(text)
	return el
}

func setItemField(change fieldChange) *etree.Element {
	set := etree.NewElement("t:SetItemField")
	set.CreateElement("t:FieldURI").CreateAttr("FieldURI", change.uri)
	set.CreateElement("t:CalendarItem").AddChild(change.value)
	return set
}
