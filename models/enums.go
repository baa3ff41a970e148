package models

// NotificationScope controls who Exchange notifies when an item is written,
// and whether a copy of the notification is kept in the Sent Items folder.
// The values mirror the MessageDisposition attribute of the UpdateItem
// operation.
type NotificationScope string

const (
	SendToNone               NotificationScope = "SendToNone"
	SendOnlyToAll            NotificationScope = "SendOnlyToAll"
	SendOnlyToChanged        NotificationScope = "SendOnlyToChanged"
	SendToAllAndSaveCopy     NotificationScope = "SendToAllAndSaveCopy"
	SendToChangedAndSaveCopy NotificationScope = "SendToChangedAndSaveCopy"
)

// Valid reports whether s is one of the scopes Exchange accepts.
func (s NotificationScope) Valid() bool {
	switch s {
	case SendToNone, SendOnlyToAll, SendOnlyToChanged, SendToAllAndSaveCopy, SendToChangedAndSaveCopy:
		return true
	}
	return false
}

// FolderKind selects which class of distinguished folders a folder listing
// scans. FolderKindAll expands to one query per concrete kind.
type FolderKind string

const (
	FolderKindContacts FolderKind = "contacts"
	FolderKindCalendar FolderKind = "calendar"
	FolderKindTasks    FolderKind = "tasks"
	FolderKindInbox    FolderKind = "inbox"
	FolderKindAll      FolderKind = "all"
)

// ConcreteFolderKinds lists every kind FolderKindAll expands to, in scan order.
var ConcreteFolderKinds = []FolderKind{
	FolderKindContacts,
	FolderKindCalendar,
	FolderKindTasks,
	FolderKindInbox,
}

// Valid reports whether k names a known folder kind.
func (k FolderKind) Valid() bool {
	if k == FolderKindAll {
		return true
	}
	for _, c := range ConcreteFolderKinds {
		if k == c {
			return true
		}
	}
	return false
}

// ElementName returns the local name of the folder element Exchange uses for
// items of this kind in FindFolder responses.
func (k FolderKind) ElementName() string {
	switch k {
	case FolderKindCalendar:
		return "CalendarFolder"
	case FolderKindContacts:
		return "ContactsFolder"
	case FolderKindTasks:
		return "TasksFolder"
	default:
		return "Folder"
	}
}

// RecurrencePattern is the repeat cadence of a recurring calendar event.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceYearly  RecurrencePattern = "yearly"
)

// WeekDays is the vocabulary accepted in a weekly recurrence day list.
var WeekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Calendar item types reported by Exchange in t:CalendarItemType.
const (
	EventTypeSingle          = "Single"
	EventTypeOccurrence      = "Occurrence"
	EventTypeException       = "Exception"
	EventTypeRecurringMaster = "RecurringMaster"
)
