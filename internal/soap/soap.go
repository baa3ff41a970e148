// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package soap constructs Exchange Web Services request bodies. Every
// function returns the operation element for exactly one EWS operation; the
// transport wraps it in a SOAP envelope via Envelope before sending.
//
// Elements carry the conventional prefixes: soap for the envelope, m for the
// messages schema and t for the types schema. Responses produced by Exchange
// use the same prefixes, which is what the extract package's path queries
// rely on.
package soap

import (
	"github.com/beevik/etree"
)

// Schema namespaces used by every EWS request and response.
const (
	NamespaceSOAP     = "http://schemas.xmlsoap.org/soap/envelope/"
	NamespaceMessages = "http://schemas.microsoft.com/exchange/services/2006/messages"
	NamespaceTypes    = "http://schemas.microsoft.com/exchange/services/2006/types"
)

// Shape selects how much of an item or folder a read operation returns.
type Shape string

const (
	ShapeIDOnly        Shape = "IdOnly"
	ShapeAllProperties Shape = "AllProperties"
)

// Envelope wraps an operation element in a SOAP envelope addressed to an
// Exchange 2010 server and returns the complete request document.
func Envelope(operation *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("soap:Envelope")
	envelope.CreateAttr("xmlns:soap", NamespaceSOAP)
	envelope.CreateAttr("xmlns:m", NamespaceMessages)
	envelope.CreateAttr("xmlns:t", NamespaceTypes)

	header := envelope.CreateElement("soap:Header")
	version := header.CreateElement("t:RequestServerVersion")
	version.CreateAttr("Version", "Exchange2010")

	envelope.CreateElement("soap:Body").AddChild(operation)
	return doc
}

// distinguishedFolderIDs are the well-known folder names Exchange resolves
// without an opaque folder id.
var distinguishedFolderIDs = map[string]bool{
	"calendar":      true,
	"contacts":      true,
	"deleteditems":  true,
	"drafts":        true,
	"inbox":         true,
	"journal":       true,
	"junkemail":     true,
	"msgfolderroot": true,
	"notes":         true,
	"outbox":        true,
	"root":          true,
	"sentitems":     true,
	"tasks":         true,
}

// folderIDElement renders a folder reference as either a distinguished
// folder name or an opaque FolderId, with an optional delegate mailbox for
// distinguished folders.
func folderIDElement(folderID, delegate string) *etree.Element {
	if distinguishedFolderIDs[folderID] {
		el := etree.NewElement("t:DistinguishedFolderId")
		el.CreateAttr("Id", folderID)
		if delegate != "" {
			mailbox := el.CreateElement("t:Mailbox")
			mailbox.CreateElement("t:EmailAddress").SetText(delegate)
		}
		return el
	}

	el := etree.NewElement("t:FolderId")
	el.CreateAttr("Id", folderID)
	return el
}

func itemShape(parent *etree.Element, shape Shape) {
	parent.CreateElement("m:ItemShape").
		CreateElement("t:BaseShape").SetText(string(shape))
}

func folderShape(parent *etree.Element, shape Shape) {
	parent.CreateElement("m:FolderShape").
		CreateElement("t:BaseShape").SetText(string(shape))
}

func itemIDElement(parent *etree.Element, id, changeKey string) {
	el := parent.CreateElement("t:ItemId")
	el.CreateAttr("Id", id)
	if changeKey != "" {
		el.CreateAttr("ChangeKey", changeKey)
	}
}
