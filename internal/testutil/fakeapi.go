package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/vk/syncroexport/internal/syncro"
)

// Request is what FakeAPI records for every call it receives.
type Request struct {
	Method     string
	Path       string
	Page       int
	CustomerID string
	Auth       string
}

// FakeAPI is an in-memory stand-in for the Syncro REST API. It serves
// /contacts and /customers with page/total_pages metadata and accepts
// POST /contacts.
type FakeAPI struct {
	Server *httptest.Server
	APIKey string

	// PerPage is the page size used when slicing Contacts and Customers.
	PerPage int
	// IgnoreCustomerFilter makes the server return every contact even when
	// customer_id is set, like a misbehaving backend.
	IgnoreCustomerFilter bool
	// FailPage answers that page of a listing with FailStatus. Zero disables.
	FailPage   int
	FailStatus int
	// RawPages replaces the body for a given listing page verbatim.
	RawPages map[int]string

	mu        sync.Mutex
	contacts  []syncro.Contact
	customers []syncro.Customer
	requests  []Request
	nextID    int64
}

// NewFakeAPI starts a fake server that is shut down when the test ends.
func NewFakeAPI(t *testing.T, contacts ...syncro.Contact) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		APIKey:     "test-key",
		PerPage:    25,
		FailStatus: http.StatusInternalServerError,
		RawPages:   map[int]string{},
		contacts:   contacts,
		nextID:     100000,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API root to pass to syncro.WithBaseURL.
func (f *FakeAPI) URL() string {
	return f.Server.URL + "/api/v1"
}

// AddCustomers appends customers served by GET /customers.
func (f *FakeAPI) AddCustomers(customers ...syncro.Customer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = append(f.customers, customers...)
}

// Contacts returns a copy of the contacts currently stored.
func (f *FakeAPI) Contacts() []syncro.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]syncro.Contact(nil), f.contacts...)
}

// Requests returns the requests received so far, in order.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Pages returns the page numbers requested from the given listing path.
func (f *FakeAPI) Pages(path string) []int {
	var pages []int
	for _, r := range f.Requests() {
		if r.Method == http.MethodGet && r.Path == "/api/v1"+path {
			pages = append(pages, r.Page)
		}
	}
	return pages
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	req := Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Page:       page,
		CustomerID: r.URL.Query().Get("customer_id"),
		Auth:       r.Header.Get("Authorization"),
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req.Auth != f.APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contacts":
		if f.FailPage != 0 && page == f.FailPage {
			writeJSON(w, f.FailStatus, map[string]string{"error": fmt.Sprintf("page %d exploded", page)})
			return
		}
		if raw, ok := f.RawPages[page]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(raw))
			return
		}
		f.serveContacts(w, req)
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/customers":
		f.mu.Lock()
		items := append([]syncro.Customer(nil), f.customers...)
		f.mu.Unlock()
		servePage(w, "customers", items, page, f.PerPage)
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/contacts":
		f.createContact(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (f *FakeAPI) serveContacts(w http.ResponseWriter, req Request) {
	f.mu.Lock()
	var items []syncro.Contact
	for _, c := range f.contacts {
		if req.CustomerID != "" && !f.IgnoreCustomerFilter && c.CustomerRef() != req.CustomerID {
			continue
		}
		items = append(items, c)
	}
	f.mu.Unlock()

	servePage(w, "contacts", items, req.Page, f.PerPage)
}

func (f *FakeAPI) createContact(w http.ResponseWriter, r *http.Request) {
	var nc syncro.NewContact
	if err := json.NewDecoder(r.Body).Decode(&nc); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	f.nextID++
	customerID := nc.CustomerID
	c := syncro.Contact{
		ID:         f.nextID,
		CustomerID: &customerID,
		Name:       optional(nc.Name),
		Email:      optional(nc.Email),
		Phone:      optional(nc.Phone),
		Mobile:     optional(nc.Mobile),
		Address1:   optional(nc.Address1),
		Address2:   optional(nc.Address2),
		City:       optional(nc.City),
		State:      optional(nc.State),
		Zip:        optional(nc.Zip),
		Notes:      optional(nc.Notes),
	}
	f.contacts = append(f.contacts, c)
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"contact": c})
}

// servePage writes one page of items with Syncro-style metadata. An empty
// collection still reports a single page.
func servePage[T any](w http.ResponseWriter, key string, items []T, page, perPage int) {
	if page < 1 {
		page = 1
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		key: append([]T{}, items[start:end]...),
		"meta": map[string]int{
			"page":          page,
			"total_pages":   totalPages,
			"total_entries": len(items),
			"per_page":      perPage,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
