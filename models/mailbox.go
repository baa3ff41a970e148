package models

import "time"

// Mailbox identifies a single Exchange mailbox participant.
type Mailbox struct {
	Name  string
	Email string
}

// Attendee is a meeting participant together with their invitation state.
// Required distinguishes required attendees from optional ones; meeting
// resources (rooms, equipment) are represented as required attendees.
type Attendee struct {
	Mailbox      Mailbox
	Required     bool
	Response     string
	LastResponse *time.Time
}

// Recipient is a mail message addressee (To or Cc).
type Recipient struct {
	Name  string
	Email string
}

// Attachment describes a file attached to a mail message. Content holds the
// base64-encoded payload and is only populated by a dedicated attachment
// fetch; item-level parsing fills in the descriptor fields only.
type Attachment struct {
	ID          string
	Name        string
	ContentType string
	ContentID   string
	Content     string
}
