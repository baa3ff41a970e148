// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package exchange

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/extract"
	"github.com/exchangekit/go-ews/internal/soap"
	"github.com/exchangekit/go-ews/models"
)

var mailFieldSpecs = map[string]extract.FieldSpec{
	"subject":         {Path: "./t:Message/t:Subject"},
	"text_body":       {Path: "./t:Message/t:Body[@BodyType='Text']"},
	"html_body":       {Path: "./t:Message/t:Body[@BodyType='HTML']"},
	"mime_content":    {Path: "./t:Message/t:MimeContent"},
	"sent":            {Path: "./t:Message/t:DateTimeSent", Cast: extract.CastDateTime},
	"created":         {Path: "./t:Message/t:DateTimeCreated", Cast: extract.CastDateTime},
	"is_read":         {Path: "./t:Message/t:IsRead", Cast: extract.CastBool},
	"has_attachments": {Path: "./t:Message/t:HasAttachments", Cast: extract.CastBool},
}

// Mail is a read-only view of a message. Messages are not writable through
// this client, so the fields are plain values without change tracking. A
// message coming from a folder listing carries the summary fields only;
// MailList.LoadExtendedProperties fills in bodies, recipients and attachment
// descriptors.
type Mail struct {
	ID        string
	ChangeKey string

	Subject  string
	TextBody string
	HTMLBody string

	// MimeContent is the base64-encoded raw RFC 2822 message, present only
	// after extended properties are loaded.
	MimeContent string

	Sent    time.Time
	Created time.Time

	IsRead         bool
	HasAttachments bool

	Sender *models.Mailbox
	To     []models.Recipient
	Cc     []models.Recipient

	// Attachments holds descriptors only; fetch content with
	// MailService.GetAttachment.
	Attachments []models.Attachment
}

// BodyBytes decodes the raw MIME content. Returns nil when extended
// properties have not been loaded.
func (m *Mail) BodyBytes() ([]byte, error) {
	if m.MimeContent == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(m.MimeContent)
	if err != nil {
		return nil, fmt.Errorf("decode mime content: %w", err)
	}
	return decoded, nil
}

func parseMail(root *etree.Element) (*Mail, error) {
	values, err := extract.Properties(root, mailFieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	ident := parseIDAttrs(root.FindElement("./t:Message/t:ItemId"))
	mail := &Mail{
		ID:             ident.id,
		ChangeKey:      ident.changeKey,
		Subject:        values.String("subject"),
		TextBody:       values.String("text_body"),
		HTMLBody:       values.String("html_body"),
		MimeContent:    values.String("mime_content"),
		Sent:           values.Time("sent"),
		Created:        values.Time("created"),
		IsRead:         values.Bool("is_read"),
		HasAttachments: values.Bool("has_attachments"),
		Sender:         parseSender(root),
		To:             parseRecipients(root, "./t:Message/t:ToRecipients/t:Mailbox"),
		Cc:             parseRecipients(root, "./t:Message/t:CcRecipients/t:Mailbox"),
		Attachments:    parseAttachmentDescriptors(root),
	}
	return mail, nil
}

func parseSender(root *etree.Element) *models.Mailbox {
	node := root.FindElement("./t:Message/t:From/t:Mailbox")
	if node == nil {
		node = root.FindElement("./t:Message/t:Sender/t:Mailbox")
	}
	if node == nil {
		return nil
	}
	values, err := extract.Properties(node, mailboxSpecs)
	if err != nil || !values.Has("email") {
		return nil
	}
	return &models.Mailbox{Name: values.String("name"), Email: values.String("email")}
}

func parseRecipients(root *etree.Element, path string) []models.Recipient {
	var recipients []models.Recipient
	for _, node := range root.FindElements(path) {
		values, err := extract.Properties(node, mailboxSpecs)
		if err != nil || !values.Has("email") {
			continue
		}
		recipients = append(recipients, models.Recipient{
			Name:  values.String("name"),
			Email: values.String("email"),
		})
	}
	return recipients
}

var attachmentSpecs = map[string]extract.FieldSpec{
	"id":           {Path: "./t:AttachmentId", Attr: "Id"},
	"name":         {Path: "./t:Name"},
	"content_type": {Path: "./t:ContentType"},
	"content_id":   {Path: "./t:ContentId"},
	"content":      {Path: "./t:Content"},
}

func parseAttachment(node *etree.Element) (models.Attachment, bool) {
	values, err := extract.Properties(node, attachmentSpecs)
	if err != nil || !values.Has("id") {
		return models.Attachment{}, false
	}
	return models.Attachment{
		ID:          values.String("id"),
		Name:        values.String("name"),
		ContentType: values.String("content_type"),
		ContentID:   values.String("content_id"),
		Content:     values.String("content"),
	}, true
}

func parseAttachmentDescriptors(root *etree.Element) []models.Attachment {
	var attachments []models.Attachment
	for _, node := range root.FindElements("./t:Message/t:Attachments/t:FileAttachment") {
		if attachment, ok := parseAttachment(node); ok {
			attachments = append(attachments, attachment)
		}
	}
	return attachments
}

// MailService exposes message listing and attachment retrieval for one mail
// folder. Obtain one via Service.Mail.
type MailService struct {
	svc      *Service
	folderID string
}

// ListMails queries the folder for message summaries. Full bodies are
// loaded in a second phase via MailList.LoadExtendedProperties.
func (m *MailService) ListMails(ctx context.Context) (*MailList, error) {
	response, err := m.svc.transport.Send(ctx, soap.FindItems(m.folderID, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("list mails: %w", err)
	}

	list := &MailList{svc: m.svc}
	for _, item := range response.FindElements("//m:RootFolder/t:Items/t:Message") {
		mail, err := parseMail(wrapFragment(item))
		if err != nil {
			return nil, fmt.Errorf("list mails: %w", err)
		}
		if mail.ID == "" {
			continue
		}
		list.Mails = append(list.Mails, mail)
		list.MailIDs = append(list.MailIDs, mail.ID)
	}
	return list, nil
}

// GetAttachment fetches one attachment with its content populated.
func (m *MailService) GetAttachment(ctx context.Context, attachmentID string) (models.Attachment, error) {
	response, err := m.svc.transport.Send(ctx, soap.GetAttachments([]string{attachmentID}))
	if err != nil {
		return models.Attachment{}, fmt.Errorf("get attachment: %w", err)
	}

	node := response.FindElement("//m:Attachments/t:FileAttachment")
	if node == nil {
		return models.Attachment{}, fmt.Errorf("get attachment: %w", ErrIncompleteResponse)
	}

	attachment, ok := parseAttachment(node)
	if !ok {
		return models.Attachment{}, fmt.Errorf("get attachment: %w", ErrIncompleteResponse)
	}
	return attachment, nil
}

// MailList is the result of a folder listing. Mails hold whatever detail the
// listing returned until LoadExtendedProperties replaces them with fully
// hydrated copies.
type MailList struct {
	svc *Service

	Mails   []*Mail
	MailIDs []string
}

// LoadExtendedProperties re-fetches every listed message with MIME content
// and extended fields in one batch, matching responses to entries by item
// id. Entries the server did not return keep their summary form. Calling it
// again fetches again and replaces again, so it doubles as a refresh; an
// empty list never makes a round trip.
func (l *MailList) LoadExtendedProperties(ctx context.Context) error {
	if len(l.MailIDs) == 0 {
		return nil
	}

	response, err := l.svc.transport.Send(ctx, soap.GetMailItems(l.MailIDs))
	if err != nil {
		return fmt.Errorf("load extended properties: %w", err)
	}

	detailed := make(map[string]*Mail)
	for _, item := range response.FindElements("//m:Items/t:Message") {
		mail, err := parseMail(wrapFragment(item))
		if err != nil {
			return fmt.Errorf("load extended properties: %w", err)
		}
		if mail.ID != "" {
			detailed[mail.ID] = mail
		}
	}

	for i, mail := range l.Mails {
		if full, ok := detailed[mail.ID]; ok {
			l.Mails[i] = full
		}
	}
	return nil
}

// Count returns the number of messages listed.
func (l *MailList) Count() int { return len(l.Mails) }
