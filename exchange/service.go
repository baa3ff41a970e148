// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package exchange is the public surface of the go-ews client: a typed view
// of an Exchange mailbox built on three collaborators — the SOAP transport,
// the request builders and the property extractor.
//
// Entities (Event, Folder, Contact, Mail, Task) synchronize with the server
// through an optimistic-concurrency token, the change key, which the server
// invalidates whenever the item changes for any reason, including this
// client's own prior writes. Every mutating operation therefore refreshes
// the key immediately before acting. Writable entities additionally track
// which fields were modified since the last synchronization point and send
// exactly that subset on update.
package exchange

import (
	"context"
	"fmt"

	"github.com/exchangekit/go-ews/internal/adapter"
	"github.com/exchangekit/go-ews/internal/logger"
	"github.com/exchangekit/go-ews/internal/soap"
)

// Service is the per-mailbox entry point. It hands out one query surface per
// entity type; all of them share the transport and logger.
type Service struct {
	transport adapter.Transport
	log       *logger.Logger
}

// NewService returns a Service on top of transport. A nil log disables
// diagnostics.
func NewService(transport adapter.Transport, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{transport: transport, log: log}
}

// Calendar returns the calendar query surface. An empty calendarID selects
// the mailbox's distinguished calendar folder.
func (s *Service) Calendar(calendarID string) *CalendarService {
	if calendarID == "" {
		calendarID = "calendar"
	}
	return &CalendarService{svc: s, calendarID: calendarID}
}

// Contacts returns the contact query surface. An empty folderID selects the
// distinguished contacts folder.
func (s *Service) Contacts(folderID string) *ContactService {
	if folderID == "" {
		folderID = "contacts"
	}
	return &ContactService{svc: s, folderID: folderID}
}

// Folders returns the folder query surface.
func (s *Service) Folders() *FolderService {
	return &FolderService{svc: s}
}

// Mail returns the mail query surface. An empty folderID selects the inbox.
func (s *Service) Mail(folderID string) *MailService {
	if folderID == "" {
		folderID = "inbox"
	}
	return &MailService{svc: s, folderID: folderID}
}

// Tasks returns the task query surface. An empty folderID selects the
// distinguished tasks folder.
func (s *Service) Tasks(folderID string) *TaskService {
	if folderID == "" {
		folderID = "tasks"
	}
	return &TaskService{svc: s, folderID: folderID}
}

// ConvertID translates an item or folder id between Exchange id formats
// (e.g. EwsId to OwaId) for the given mailbox.
func (s *Service) ConvertID(ctx context.Context, fromID, destinationFormat, sourceFormat, mailbox string) (string, error) {
	response, err := s.transport.Send(ctx, soap.ConvertID(fromID, destinationFormat, sourceFormat, mailbox))
	if err != nil {
		return "", fmt.Errorf("convert id: %w", err)
	}

	alternate := response.FindElement("//m:ConvertIdResponseMessage/m:AlternateId")
	if alternate == nil {
		return "", fmt.Errorf("convert id: %w", ErrIncompleteResponse)
	}
	converted := alternate.SelectAttrValue("Id", "")
	if converted == "" {
		return "", fmt.Errorf("convert id: %w", ErrIncompleteResponse)
	}
	return converted, nil
}
