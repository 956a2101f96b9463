// Package query turns a lead collection into one ordered page of results.
// Every function here is pure: identical inputs give identical output and
// the input slice is never modified.
package query

import (
	"slices"
	"strings"

	"github.com/vinayk98/mini-crm/internal/model"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 10

// StatusAll disables the status filter.
const StatusAll = "All"

// SortDir orders results by creation time.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Params is the user-controlled part of a list query.
type Params struct {
	// Search matches a case-insensitive substring of the name or a
	// substring of the phone. Blank disables it.
	Search string

	// Status is StatusAll or a lead status, compared case-insensitively.
	Status string

	// SortDir defaults to descending (newest first) when empty.
	SortDir SortDir
}

// Result is one page of filtered, sorted leads.
type Result struct {
	Items      []model.Lead
	Total      int
	TotalPages int
}

// Run filters, sorts and paginates leads. Pages are 1-based; a page outside
// the available range yields an empty Items slice rather than an error.
func Run(leads []model.Lead, p Params, page, pageSize int) Result {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(leads, p)
	Sort(filtered, p.SortDir)

	return Result{
		Items:      Paginate(filtered, page, pageSize),
		Total:      len(filtered),
		TotalPages: TotalPages(len(filtered), pageSize),
	}
}

// Filter returns a new slice with the leads matching the status filter and
// the search string, in collection order.
func Filter(leads []model.Lead, p Params) []model.Lead {
	status := strings.TrimSpace(p.Status)
	allStatuses := status == "" || strings.EqualFold(status, StatusAll)
	search := strings.TrimSpace(p.Search)
	lowered := strings.ToLower(search)

	out := make([]model.Lead, 0, len(leads))
	for _, l := range leads {
		if !allStatuses && !strings.EqualFold(string(l.Status), status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Name), lowered) &&
			!strings.Contains(l.Phone, search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Sort orders leads in place by CreatedAt. The sort is stable, so leads
// created at the same instant keep their relative collection order.
func Sort(leads []model.Lead, dir SortDir) {
	slices.SortStableFunc(leads, func(a, b model.Lead) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if dir == SortAsc {
			return c
		}
		return -c
	})
}

// Paginate returns the 1-based page of leads.
func Paginate(leads []model.Lead, page, pageSize int) []model.Lead {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return []model.Lead{}
	}
	start := (page - 1) * pageSize
	if start >= len(leads) {
		return []model.Lead{}
	}
	end := min(start+pageSize, len(leads))
	return slices.Clone(leads[start:end])
}

// TotalPages is ceil(count/pageSize), never less than 1.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	return max(pages, 1)
}

// NextSortDir flips the sort direction.
func NextSortDir(dir SortDir) SortDir {
	if dir == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// StatusFilters lists the values cycled through by the status filter,
// starting with StatusAll.
func StatusFilters() []string {
	out := []string{StatusAll}
	for _, s := range model.LeadStatuses {
		out = append(out, string(s))
	}
	return out
}
