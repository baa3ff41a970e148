package exchange

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/exchangekit/go-ews/internal/extract"
	"github.com/exchangekit/go-ews/internal/soap"
)

// contactFieldSpecs covers the read path of t:Contact. Keyed entries such as
// email addresses and phone numbers live in Entry elements selected by their
// Key attribute.
var contactFieldSpecs = map[string]extract.FieldSpec{
	"display_name":      {Path: "./t:Contact/t:DisplayName"},
	"given_name":        {Path: "./t:Contact/t:GivenName"},
	"surname":           {Path: "./t:Contact/t:Surname"},
	"nickname":          {Path: "./t:Contact/t:Nickname"},
	"company":           {Path: "./t:Contact/t:CompanyName"},
	"job_title":         {Path: "./t:Contact/t:JobTitle"},
	"department":        {Path: "./t:Contact/t:Department"},
	"office_location":   {Path: "./t:Contact/t:OfficeLocation"},
	"business_homepage": {Path: "./t:Contact/t:BusinessHomePage"},
	"email_address1":    {Path: "./t:Contact/t:EmailAddresses/t:Entry[@Key='EmailAddress1']"},
	"email_address2":    {Path: "./t:Contact/t:EmailAddresses/t:Entry[@Key='EmailAddress2']"},
	"email_address3":    {Path: "./t:Contact/t:EmailAddresses/t:Entry[@Key='EmailAddress3']"},
	"phone_business":    {Path: "./t:Contact/t:PhoneNumbers/t:Entry[@Key='BusinessPhone']"},
	"phone_home":        {Path: "./t:Contact/t:PhoneNumbers/t:Entry[@Key='HomePhone']"},
	"phone_mobile":      {Path: "./t:Contact/t:PhoneNumbers/t:Entry[@Key='MobilePhone']"},
}

// Contact is a read-only view of an address book entry. Contacts are not
// writable through this client, so the fields are plain values without
// change tracking.
type Contact struct {
	ID        string
	ChangeKey string

	DisplayName      string
	GivenName        string
	Surname          string
	Nickname         string
	Company          string
	JobTitle         string
	Department       string
	OfficeLocation   string
	BusinessHomePage string

	Email1 string
	Email2 string
	Email3 string

	BusinessPhone string
	HomePhone     string
	MobilePhone   string
}

func parseContact(root *etree.Element) (*Contact, error) {
	values, err := extract.Properties(root, contactFieldSpecs)
	if err != nil {
		return nil, fmt.Errorf("parse contact: %w", err)
	}

	ident := parseIDAttrs(root.FindElement("./t:Contact/t:ItemId"))
	return &Contact{
		ID:               ident.id,
		ChangeKey:        ident.changeKey,
		DisplayName:      values.String("display_name"),
		GivenName:        values.String("given_name"),
		Surname:          values.String("surname"),
		Nickname:         values.String("nickname"),
		Company:          values.String("company"),
		JobTitle:         values.String("job_title"),
		Department:       values.String("department"),
		OfficeLocation:   values.String("office_location"),
		BusinessHomePage: values.String("business_homepage"),
		Email1:           values.String("email_address1"),
		Email2:           values.String("email_address2"),
		Email3:           values.String("email_address3"),
		BusinessPhone:    values.String("phone_business"),
		HomePhone:        values.String("phone_home"),
		MobilePhone:      values.String("phone_mobile"),
	}, nil
}

// ContactsQuery narrows a contact search. All fields are optional.
type ContactsQuery struct {
	// Query matches against the default contact search fields.
	Query string

	// InitialName and FinalName bound the alphabetical display-name range.
	InitialName string
	FinalName   string

	// MaxEntries caps the result size; zero means the server default.
	MaxEntries int
}

// ContactService exposes address book lookups for one contacts folder.
// Obtain one via Service.Contacts.
type ContactService struct {
	svc      *Service
	folderID string
}

// GetContact fetches a single contact with all properties.
func (c *ContactService) GetContact(ctx context.Context, id string) (*Contact, error) {
	response, err := c.svc.transport.Send(ctx, soap.GetItem([]string{id}, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	items := response.FindElement("//m:Items")
	if items == nil || items.FindElement("./t:Contact") == nil {
		return nil, fmt.Errorf("get contact: %w", ErrIncompleteResponse)
	}

	contact, err := parseContact(items)
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

// FindContacts searches the folder with the given bounds.
func (c *ContactService) FindContacts(ctx context.Context, q ContactsQuery) (*ContactList, error) {
	op := soap.FindContactItems(c.folderID, soap.ContactsQuery{
		Query:       q.Query,
		InitialName: q.InitialName,
		FinalName:   q.FinalName,
		MaxEntries:  q.MaxEntries,
	})

	response, err := c.svc.transport.Send(ctx, op)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	return contactList(response)
}

// GetAllContacts lists the whole folder.
func (c *ContactService) GetAllContacts(ctx context.Context) (*ContactList, error) {
	response, err := c.svc.transport.Send(ctx, soap.FindItems(c.folderID, soap.ShapeAllProperties))
	if err != nil {
		return nil, fmt.Errorf("get all contacts: %w", err)
	}
	return contactList(response)
}

func contactList(response *etree.Document) (*ContactList, error) {
	list := &ContactList{}
	for _, item := range response.FindElements("//m:RootFolder/t:Items/t:Contact") {
		contact, err := parseContact(wrapFragment(item))
		if err != nil {
			return nil, err
		}
		if contact.ID != "" {
			list.Contacts = append(list.Contacts, contact)
		}
	}
	return list, nil
}

// ContactList is the result of a contact search.
type ContactList struct {
	Contacts []*Contact
}

// Count returns the number of contacts found.
func (l *ContactList) Count() int { return len(l.Contacts) }
