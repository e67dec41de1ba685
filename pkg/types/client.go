package types

import "regexp"

// Client is a person who books units. Document is the dedup key: unique
// across all clients, compared case-sensitively.
type Client struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
}

// ClientInput carries client fields as submitted by a caller. All fields are
// strings matching a typical form-submission shape; an empty string means
// "not supplied" on update.
type ClientInput struct {
	Name     string
	Email    string
	Phone    string
	Document string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks all fields and returns the full set of failures, or nil.
func (in ClientInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if isBlank(in.Name) {
		errs["name"] = "name is required"
	}
	if isBlank(in.Email) {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(in.Email) {
		errs["email"] = "email format is not valid"
	}
	if isBlank(in.Phone) {
		errs["phone"] = "phone is required"
	}
	if isBlank(in.Document) {
		errs["document"] = "document is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Record returns the durable representation of the client.
func (c *Client) Record() Record {
	return Record{
		"id":       c.ID,
		"name":     c.Name,
		"email":    c.Email,
		"phone":    c.Phone,
		"document": c.Document,
	}
}

// ClientFromRecord rebuilds a client from its durable record. Returns false
// if the record lacks a usable id.
func ClientFromRecord(r Record) (*Client, bool) {
	id, ok := recordInt(r, "id")
	if !ok {
		return nil, false
	}
	return &Client{
		ID:       id,
		Name:     recordString(r, "name"),
		Email:    recordString(r, "email"),
		Phone:    recordString(r, "phone"),
		Document: recordString(r, "document"),
	}, true
}
