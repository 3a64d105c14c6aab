// Package csvexport writes Syncro contacts to CSV. Columns come from a fixed
// registry; rows are written in the order the contacts arrive, and absent
// values become empty cells.
package csvexport
