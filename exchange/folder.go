// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/adapter"
	"github.com/exchangekit/go-ews/internal/extract"
	"github.com/exchangekit/go-ews/internal/soap"
	"github.com/exchangekit/go-ews/internal/tracker"
	"github.com/exchangekit/go-ews/internal/validators"
	"github.com/exchangekit/go-ews/models"
)

// folderElements are the concrete folder element names a response body may
// carry a folder under.
var folderElements = []string{
	"t:Folder",
	"t:CalendarFolder",
	"t:ContactsFolder",
	"t:SearchFolder",
	"t:TasksFolder",
}

var folderFieldSpecs = map[string]extract.FieldSpec{
	"display_name": {Path: "./t:DisplayName"},
}

// FolderFields is the writable field set used to construct an unsaved
// folder.
type FolderFields struct {
	DisplayName string

	// FolderType is the concrete element name, e.g. "CalendarFolder".
	// Empty means a generic mail folder.
	FolderType string

	ParentID string
}

// Folder is a mailbox folder. DisplayName is the only tracked field; the
// rest is fixed at creation.
type Folder struct {
	svc *Service

	ident itemID
	dirty *tracker.Tracker

	displayName string
	folderType  string
	parentID    string
}

func newFolder(svc *Service) *Folder {
	return &Folder{svc: svc, dirty: tracker.New()}
}

// ID is the server-assigned identifier, empty until the folder is created
// or loaded.
func (f *Folder) ID() string { return f.ident.id }

// ChangeKey is the optimistic-concurrency token attached to mutating calls.
func (f *Folder) ChangeKey() string { return f.ident.changeKey }

// FolderType is the concrete element name the server reported, e.g.
// "CalendarFolder".
func (f *Folder) FolderType() string { return f.folderType }

// ParentID is the containing folder.
func (f *Folder) ParentID() string { return f.parentID }

func (f *Folder) DisplayName() string { return f.displayName }

func (f *Folder) SetDisplayName(v string) {
	f.displayName = v
	f.dirty.Record("display_name")
}

// DirtyFields returns the names of fields modified since the last
// synchronization point, in sorted order.
func (f *Folder) DirtyFields() []string { return f.dirty.Fields() }

func (f *Folder) render() soap.Folder {
	return soap.Folder{
		DisplayName: f.displayName,
		FolderType:  f.folderType,
		ParentID:    f.parentID,
	}
}

// Create persists an unsaved folder under its parent.
func (f *Folder) Create(ctx context.Context) error {
	if f.ident.persisted() {
		return fmt.Errorf("create folder: %w", ErrAlreadyPersisted)
	}
	if err := validators.ValidateFolder(f.displayName, f.parentID); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	response, err := f.svc.transport.Send(ctx, soap.CreateFolder(f.render()))
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	ident := parseIDAttrs(findFolderID(response.Root(), "//m:Folders"))
	if !ident.persisted() {
		return fmt.Errorf("create folder: %w", ErrIncompleteResponse)
	}
	f.ident = ident
	f.dirty.Reset()

	f.svc.log.Debug().Str("folder_id", f.ident.id).Msg("folder created")
	return nil
}

// Delete removes the folder. The change key is refreshed first; on success
// the local id is cleared so a second Delete fails with ErrNotPersisted.
func (f *Folder) Delete(ctx context.Context) error {
	if !f.ident.persisted() {
		return fmt.Errorf("delete folder: %w", ErrNotPersisted)
	}

	_, err := f.mutate(ctx, func() *etree.Element {
		return soap.DeleteFolder(f.ident.id, f.ident.changeKey)
	})
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	f.ident = itemID{}
	return nil
}

// MoveTo reparents the folder. Folders keep their id across a move; a
// response naming a different id is rejected as incomplete.
func (f *Folder) MoveTo(ctx context.Context, newParentID string) error {
	if newParentID == "" {
		return fmt.Errorf("move folder: %w", ErrMissingFolderID)
	}
	if !f.ident.persisted() {
		return fmt.Errorf("move folder: %w", ErrNotPersisted)
	}

	response, err := f.mutate(ctx, func() *etree.Element {
		return soap.MoveFolder(f.ident.id, f.ident.changeKey, newParentID)
	})
	if err != nil {
		return fmt.Errorf("move folder: %w", err)
	}

	moved := parseIDAttrs(findFolderID(response.Root(), "//m:Folders"))
	if moved.id != f.ident.id {
		return fmt.Errorf("move folder: MoveFolder returned success but requested folder not moved: %w", ErrIncompleteResponse)
	}

	f.ident = moved
	f.parentID = newParentID
	return nil
}

// RefreshChangeKey fetches the current change key by id and overwrites the
// local copy.
func (f *Folder) RefreshChangeKey(ctx context.Context) error {
	response, err := f.svc.transport.Send(ctx, soap.GetFolder(f.ident.id, soap.ShapeIDOnly))
	if err != nil {
		return fmt.Errorf("refresh change key: %w", err)
	}

	ident := parseIDAttrs(findFolderID(response.Root(), "//m:Folders"))
	if !ident.persisted() {
		return fmt.Errorf("refresh change key: %w", ErrIncompleteResponse)
	}
	f.ident = ident
	return nil
}

// mutate is the refresh-then-act step shared by delete and move: refresh the
// change key, send the request built by build (which reads the refreshed
// key), and if the server still rejects the key as stale, refresh and retry
// exactly once.
func (f *Folder) mutate(ctx context.Context, build func() *etree.Element) (*etree.Document, error) {
	if err := f.RefreshChangeKey(ctx); err != nil {
		return nil, err
	}

	response, err := f.svc.transport.Send(ctx, build())
	if errors.Is(err, adapter.ErrStaleChangeKey) {
		if err = f.RefreshChangeKey(ctx); err != nil {
			return nil, err
		}
		response, err = f.svc.transport.Send(ctx, build())
	}
	return response, err
}

// findFolderID locates the t:FolderId of the first concrete folder element
// under the container at path.
func findFolderID(root *etree.Element, path string) *etree.Element {
	container := root.FindElement(path)
	if container == nil {
		return nil
	}
	for _, name := range folderElements {
		if folder := container.FindElement("./" + name + "/t:FolderId"); folder != nil {
			return folder
		}
	}
	return nil
}

// hydrate overwrites the folder's state from a concrete folder element
// (t:Folder, t:CalendarFolder, ...). The element's own tag is the folder
// type.
func (f *Folder) hydrate(el *etree.Element) error {
	values, err := extract.Properties(el, folderFieldSpecs)
	if err != nil {
		return fmt.Errorf("parse folder: %w", err)
	}

	f.dirty.Suspend(func() {
		f.SetDisplayName(values.String("display_name"))
	})
	f.folderType = el.Tag
	f.ident = parseIDAttrs(el.FindElement("./t:FolderId"))
	if parent := el.FindElement("./t:ParentFolderId"); parent != nil {
		f.parentID = parent.SelectAttrValue("Id", "")
	}
	f.dirty.Reset()
	return nil
}

// FolderService exposes folder discovery and management. Obtain one via
// Service.Folders.
type FolderService struct {
	svc *Service
}

// NewFolder constructs an unsaved folder. Call Create on the result to
// persist it.
func (s *FolderService) NewFolder(fields FolderFields) *Folder {
	folder := newFolder(s.svc)
	folder.dirty.Suspend(func() {
		folder.SetDisplayName(fields.DisplayName)
	})
	folder.folderType = fields.FolderType
	folder.parentID = fields.ParentID
	return folder
}

// GetFolder fetches a single folder with all properties.
func (s *FolderService) GetFolder(ctx context.Context, id string) (*Folder, error) {
	response, err := s.svc.transport.Send(ctx, soap.GetFolder(id, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}

	folderID := findFolderID(response.Root(), "//m:Folders")
	if folderID == nil {
		return nil, fmt.Errorf("get folder: %w", ErrIncompleteResponse)
	}

	folder := newFolder(s.svc)
	if err = folder.hydrate(folderID.Parent()); err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// FindFolders lists the direct children of parentID.
func (s *FolderService) FindFolders(ctx context.Context, parentID string) (*FolderList, error) {
	if parentID == "" {
		return nil, fmt.Errorf("find folders: %w", ErrMissingFolderID)
	}

	response, err := s.svc.transport.Send(ctx, soap.FindFolder(parentID, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("find folders: %w", err)
	}
	return s.folderList(response, "//m:RootFolder/t:Folders/*")
}

// ListFolders finds every folder of the given kind anywhere in the mailbox.
// The kind "all" issues one deep query per concrete kind and concatenates
// the results, since folder classes can only be matched one at a time.
func (s *FolderService) ListFolders(ctx context.Context, kind models.FolderKind) (*FolderList, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("list folders: %w: %q", ErrInvalidFolderKind, kind)
	}

	kinds := []models.FolderKind{kind}
	if kind == models.FolderKindAll {
		kinds = models.ConcreteFolderKinds
	}

	list := &FolderList{}
	for _, k := range kinds {
		response, err := s.svc.transport.Send(ctx, soap.FindFolderByKind(k, soap.ShapeAllProperties))
		if err != nil {
			return nil, fmt.Errorf("list folders: kind %q: %w", k, err)
		}

		// A class-restricted scan only yields folders of the matching
		// concrete element, so iterate exactly that element.
		part, err := s.folderList(response, "//m:RootFolder/t:Folders/t:"+k.ElementName())
		if err != nil {
			return nil, fmt.Errorf("list folders: kind %q: %w", k, err)
		}
		list.Folders = append(list.Folders, part.Folders...)
	}
	return list, nil
}

func (s *FolderService) folderList(response *etree.Document, path string) (*FolderList, error) {
	list := &FolderList{}
	for _, el := range response.FindElements(path) {
		folder := newFolder(s.svc)
		if err := folder.hydrate(el); err != nil {
			return nil, err
		}
		if folder.ident.persisted() {
			list.Folders = append(list.Folders, folder)
		}
	}
	return list, nil
}

// FolderList is the result of a folder query.
type FolderList struct {
	Folders []*Folder
}

// Count returns the number of folders found.
func (l *FolderList) Count() int { return len(l.Folders) }
