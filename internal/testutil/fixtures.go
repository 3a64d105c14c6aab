package testutil

import (
	"fmt"

	"github.com/vk/syncroexport/internal/syncro"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// MakeContacts builds n contacts with ids starting at firstID, all belonging
// to customerID.
func MakeContacts(n int, firstID, customerID int64) []syncro.Contact {
	contacts := make([]syncro.Contact, 0, n)
	for i := 0; i < n; i++ {
		id := firstID + int64(i)
		contacts = append(contacts, syncro.Contact{
			ID:         id,
			CustomerID: Ptr(customerID),
			Name:       Ptr(fmt.Sprintf("Contact %d", id)),
			Email:      Ptr(fmt.Sprintf("contact%d@example.com", id)),
			Phone:      Ptr(fmt.Sprintf("555-%04d", id%10000)),
		})
	}
	return contacts
}
