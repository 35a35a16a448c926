// Package webhook defines the identity provider's lifecycle event payloads
// and their parsing.
//
// EVENT ENVELOPE:
// The provider pushes JSON bodies shaped as {"type": "...", "data": {...}}
// where type is one of user.created / user.updated / user.deleted and data
// carries the provider's user object. The envelope is only decoded AFTER
// the Svix signature on the raw body has verified — see the webhook
// handler.
package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event types this consumer reacts to. Anything else is acknowledged and
// ignored so the provider doesn't redeliver events we don't care about.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the verified envelope of a lifecycle notification.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseEvent decodes a verified raw body into an Event.
func ParseEvent(body []byte) (*Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("webhook: decoding event envelope: %w", err)
	}
	if evt.Type == "" {
		return nil, fmt.Errorf("webhook: event has no type")
	}
	return &evt, nil
}

// UserPayload is the provider's user object as delivered in event data.
// Only the fields this system stores are decoded.
type UserPayload struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

// EmailAddress is one entry of the provider's email list; the first entry
// is the primary address.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// UserData decodes the event's data into a UserPayload. For user.deleted
// events the provider only sends the id, which still decodes fine.
func (e *Event) UserData() (*UserPayload, error) {
	var p UserPayload
	if err := json.Unmarshal(e.Data, &p); err != nil {
		return nil, fmt.Errorf("webhook: decoding %s data: %w", e.Type, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("webhook: %s event has no user id", e.Type)
	}
	return &p, nil
}

// PrimaryEmail returns the first email address, or "" if the provider sent
// none.
func (p *UserPayload) PrimaryEmail() string {
	if len(p.EmailAddresses) == 0 {
		return ""
	}
	return p.EmailAddresses[0].EmailAddress
}

// DisplayName joins first and last name, falling back to "User" when the
// provider has neither (matches what the SPA shows for a blank profile).
func (p *UserPayload) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return "User"
	}
	return name
}
