// Package syncro is a small client for the Syncro RMM REST API. It covers the
// endpoints the exporter needs: paginated listing of contacts and customers,
// and contact creation.
//
// Listing endpoints are exposed through Pager, a lazy, single-use cursor that
// requests one page at a time and stops on the first empty page or when the
// reported page reaches the reported page count.
package syncro
