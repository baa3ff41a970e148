package soap

import (
	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/models"
)

// Folder is the wire-facing snapshot of a folder consumed by CreateFolder.
type Folder struct {
	DisplayName string
	FolderType  string
	ParentID    string
}

// GetFolder requests a single folder by id or distinguished name.
func GetFolder(folderID string, shape Shape) *etree.Element {
	op := etree.NewElement("m:GetFolder")
	folderShape(op, shape)
	op.CreateElement("m:FolderIds").AddChild(folderIDElement(folderID, ""))
	return op
}

// CreateFolder builds the request creating a folder of f.FolderType (Folder,
// CalendarFolder, ContactsFolder, SearchFolder or TasksFolder) under
// f.ParentID.
func CreateFolder(f Folder) *etree.Element {
	op := etree.NewElement("m:CreateFolder")
	op.CreateElement("m:ParentFolderId").AddChild(folderIDElement(f.ParentID, ""))

	folderType := f.FolderType
	if folderType == "" {
		folderType = "Folder"
	}
	folder := op.CreateElement("m:Folders").CreateElement("t:" + folderType)
	folder.CreateElement("t:DisplayName").SetText(f.DisplayName)
	return op
}

// FindFolder lists the direct sub-folders of a parent folder.
func FindFolder(parentID string, shape Shape) *etree.Element {
	op := etree.NewElement("m:FindFolder")
	op.CreateAttr("Traversal", "Shallow")
	folderShape(op, shape)
	op.CreateElement("m:ParentFolderIds").AddChild(folderIDElement(parentID, ""))
	return op
}

// folderClasses maps a folder kind to the PR_CONTAINER_CLASS value Exchange
// stores for folders of that kind.
var folderClasses = map[models.FolderKind]string{
	models.FolderKindContacts: "IPF.Contact",
	models.FolderKindCalendar: "IPF.Appointment",
	models.FolderKindTasks:    "IPF.Task",
	models.FolderKindInbox:    "IPF.Note",
}

// FindFolderByKind scans the whole mailbox for folders of one concrete kind.
// The aggregate kind is expanded by the caller, one request per kind; the
// protocol has no combined query.
func FindFolderByKind(kind models.FolderKind, shape Shape) *etree.Element {
	op := etree.NewElement("m:FindFolder")
	op.CreateAttr("Traversal", "Deep")
	folderShape(op, shape)

	match := op.CreateElement("m:Restriction").CreateElement("t:IsEqualTo")
	match.CreateElement("t:FieldURI").CreateAttr("FieldURI", "folder:FolderClass")
	match.CreateElement("t:FieldURIOrConstant").
		CreateElement("t:Constant").CreateAttr("Value", folderClasses[kind])

	op.CreateElement("m:ParentFolderIds").AddChild(folderIDElement("msgfolderroot", ""))
	return op
}

// DeleteFolder builds a hard delete for the folder.
func DeleteFolder(id, changeKey string) *etree.Element {
	op := etree.NewElement("m:DeleteFolder")
	op.CreateAttr("DeleteType", "HardDelete")

	folder := op.CreateElement("m:FolderIds").CreateElement("t:FolderId")
	folder.CreateAttr("Id", id)
	if changeKey != "" {
		folder.CreateAttr("ChangeKey", changeKey)
	}
	return op
}

// MoveFolder moves a folder under a new parent.
func MoveFolder(id, changeKey, newParentID string) *etree.Element {
	op := etree.NewElement("m:MoveFolder")
	op.CreateElement("m:ToFolderId").AddChild(folderIDElement(newParentID, ""))

	folder := op.CreateElement("m:FolderIds").CreateElement("t:FolderId")
	folder.CreateAttr("Id", id)
	if changeKey != "" {
		folder.CreateAttr("ChangeKey", changeKey)
	}
	return op
}
