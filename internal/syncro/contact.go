// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Contact record as the contacts endpoint returns it.
// Contacts are decoded once and never modified; the customer reference is an
// opaque id that is compared but never resolved.
package syncro

import "strconv"

// Contact is a person attached to a customer account.
type Contact struct {
	ID         int64   `json:"id"`
	CustomerID *int64  `json:"customer_id"`
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Mobile     *string `json:"mobile"`
	Extension  *string `json:"extension"`
	Address1   *string `json:"address1"`
	Address2   *string `json:"address2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Zip        *string `json:"zip"`
	Notes      *string `json:"notes"`
	OptOut     *bool   `json:"opt_out"`
	CreatedAt  *string `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

// CustomerRef returns the customer id as text, or "" when the contact has none.
func (c Contact) CustomerRef() string {
	if c.CustomerID == nil {
		return ""
	}
	return strconv.FormatInt(*c.CustomerID, 10)
}

// Phones returns the contact's non-empty phone numbers, landline first.
func (c Contact) Phones() []string {
	var phones []string
	for _, p := range []*string{c.Phone, c.Mobile} {
		if v := Str(p); v != "" {
			phones = append(phones, v)
		}
	}
	return phones
}

// NewContact holds the fields accepted when creating a contact.
type NewContact struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name,omitempty"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Zip        string `json:"zip,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Str dereferences an optional string, mapping nil to "".
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
