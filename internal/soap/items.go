package soap

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/models"
)

const (
	timestampLayout = time.RFC3339
	dateLayout      = "2006-01-02"
)

// GetItem requests one or more items by id. With ShapeIDOnly the response
// carries just ItemId elements, which is all a change-key refresh needs.
func GetItem(ids []string, shape Shape) *etree.Element {
	op := etree.NewElement("m:GetItem")
	itemShape(op, shape)

	itemIDs := op.CreateElement("m:ItemIds")
	for _, id := range ids {
		itemIDElement(itemIDs, id, "")
	}
	return op
}

// GetMaster requests the recurring master of the occurrence identified by id.
func GetMaster(occurrenceID string, shape Shape) *etree.Element {
	op := etree.NewElement("m:GetItem")
	itemShape(op, shape)

	master := op.CreateElement("m:ItemIds").CreateElement("t:RecurringMasterItemId")
	master.CreateAttr("OccurrenceId", occurrenceID)
	return op
}

// GetOccurrence requests occurrences of the recurring master identified by
// masterID, one OccurrenceItemId per instance index.
func GetOccurrence(masterID string, indexes []int, shape Shape) *etree.Element {
	op := etree.NewElement("m:GetItem")
	itemShape(op, shape)

	itemIDs := op.CreateElement("m:ItemIds")
	for _, idx := range indexes {
		occurrence := itemIDs.CreateElement("t:OccurrenceItemId")
		occurrence.CreateAttr("RecurringMasterId", masterID)
		occurrence.CreateAttr("InstanceIndex", strconv.Itoa(idx))
	}
	return op
}

// FindCalendarItems queries a calendar folder for items between start and
// end. delegate, when non-empty, addresses the distinguished calendar of
// another mailbox.
func FindCalendarItems(calendarID string, start, end time.Time, delegate string) *etree.Element {
	op := etree.NewElement("m:FindItem")
	op.CreateAttr("Traversal", "Shallow")
	itemShape(op, ShapeAllProperties)

	view := op.CreateElement("m:CalendarView")
	view.CreateAttr("StartDate", start.UTC().Format(timestampLayout))
	view.CreateAttr("EndDate", end.UTC().Format(timestampLayout))

	op.CreateElement("m:ParentFolderIds").AddChild(folderIDElement(calendarID, delegate))
	return op
}

// FindItems lists items contained in a single folder.
func FindItems(folderID string, shape Shape) *etree.Element {
	op := etree.NewElement("m:FindItem")
	op.CreateAttr("Traversal", "Shallow")
	itemShape(op, shape)
	op.CreateElement("m:ParentFolderIds").AddChild(folderIDElement(folderID, ""))
	return op
}

// ContactsQuery bounds a contact search: an AQS query string plus
// lexicographic name bounds and a result cap for the ContactsView.
type ContactsQuery struct {
	Query       string
	InitialName string
	FinalName   string
	MaxEntries  int
}

// FindContactItems searches a contacts folder with the given bounds.
func FindContactItems(folderID string, q ContactsQuery) *etree.Element {
	op := etree.NewElement("m:FindItem")
	op.CreateAttr("Traversal", "Shallow")
	itemShape(op, ShapeAllProperties)

	view := op.CreateElement("m:ContactsView")
	if q.MaxEntries > 0 {
		view.CreateAttr("MaxEntriesReturned", strconv.Itoa(q.MaxEntries))
	}
	if q.InitialName != "" {
		view.CreateAttr("InitialName", q.InitialName)
	}
	if q.FinalName != "" {
		view.CreateAttr("FinalName", q.FinalName)
	}

	op.CreateElement("m:ParentFolderIds").AddChild(folderIDElement(folderID, ""))
	if q.Query != "" {
		op.CreateElement("m:QueryString").SetText(q.Query)
	}
	return op
}

// CreateEvent builds the CreateItem request for a new calendar event.
// Invitations to attendees are sent out immediately.
func CreateEvent(ev Event) *etree.Element {
	op := etree.NewElement("m:CreateItem")
	op.CreateAttr("SendMeetingInvitations", string(models.SendToAllAndSaveCopy))

	op.CreateElement("m:SavedItemFolderId").AddChild(folderIDElement(ev.CalendarID, ""))
	op.CreateElement("m:Items").AddChild(calendarItemElement(ev))
	return op
}

// UpdateEvent builds an UpdateItem request scoped to exactly the dirty field
// names. An empty dirty list produces an update with no field changes, which
// is how invitations are re-sent without editing the item.
func UpdateEvent(id, changeKey string, ev Event, dirty []string, scope models.NotificationScope) *etree.Element {
	op := etree.NewElement("m:UpdateItem")
	op.CreateAttr("ConflictResolution", "AlwaysOverwrite")
	op.CreateAttr("MessageDisposition", "SendAndSaveCopy")
	op.CreateAttr("SendMeetingInvitationsOrCancellations", string(scope))

	change := op.CreateElement("m:ItemChanges").CreateElement("t:ItemChange")
	itemIDElement(change, id, changeKey)
	updates := change.CreateElement("t:Updates")

	// Several field names can render into the same FieldURI (the recurrence
	// group, the two body variants); emit each URI once.
	seen := make(map[string]bool)
	for _, field := range dirty {
		for _, fc := range eventFieldChanges(ev, field) {
			if seen[fc.uri] {
				continue
			}
			seen[fc.uri] = true
			updates.AddChild(setItemField(fc))
		}
	}
	return op
}

// DeleteEvent builds the DeleteItem request that cancels a calendar event
// and notifies everyone who has not declined.
func DeleteEvent(id, changeKey string) *etree.Element {
	op := etree.NewElement("m:DeleteItem")
	op.CreateAttr("DeleteType", "MoveToDeletedItems")
	op.CreateAttr("SendMeetingCancellations", string(models.SendToAllAndSaveCopy))

	itemIDElement(op.CreateElement("m:ItemIds"), id, changeKey)
	return op
}

// MoveItem moves an item into the folder identified by folderID.
func MoveItem(id, changeKey, folderID string) *etree.Element {
	op := etree.NewElement("m:MoveItem")
	op.CreateElement("m:ToFolderId").AddChild(folderIDElement(folderID, ""))
	itemIDElement(op.CreateElement("m:ItemIds"), id, changeKey)
	return op
}

// GetMailItems requests full mail messages, including the MIME content and
// body that FindItem responses omit.
func GetMailItems(ids []string) *etree.Element {
	op := etree.NewElement("m:GetItem")

	shape := op.CreateElement("m:ItemShape")
	shape.CreateElement("t:BaseShape").SetText(string(ShapeAllProperties))
	shape.CreateElement("t:IncludeMimeContent").SetText("true")
	additional := shape.CreateElement("t:AdditionalProperties")
	for _, uri := range []string{"item:Body", "item:DateTimeSent", "item:DateTimeCreated"} {
		additional.CreateElement("t:FieldURI").CreateAttr("FieldURI", uri)
	}

	itemIDs := op.CreateElement("m:ItemIds")
	for _, id := range ids {
		itemIDElement(itemIDs, id, "")
	}
	return op
}

// GetAttachments downloads attachment content by attachment id.
func GetAttachments(ids []string) *etree.Element {
	op := etree.NewElement("m:GetAttachment")
	op.CreateElement("m:AttachmentShape")

	attachmentIDs := op.CreateElement("m:AttachmentIds")
	for _, id := range ids {
		attachmentIDs.CreateElement("t:AttachmentId").CreateAttr("Id", id)
	}
	return op
}

// ConvertID translates an item or folder id between Exchange id formats.
func ConvertID(fromID, destinationFormat, sourceFormat, mailbox string) *etree.Element {
	op := etree.NewElement("m:ConvertId")
	op.CreateAttr("DestinationFormat", destinationFormat)

	alternate := op.CreateElement("m:SourceIds").CreateElement("t:AlternateId")
	alternate.CreateAttr("Format", sourceFormat)
	alternate.CreateAttr("Id", fromID)
	alternate.CreateAttr("Mailbox", mailbox)
	return op
}
