// Package paging turns ?page= and ?per_page= into a window over a counted list.
package paging

import (
	"net/url"
	"slices"
	"strconv"
)

// DefaultPerPage is used when per_page is missing or not one of Sizes.
const DefaultPerPage = 25

// maxLinks is how many page numbers the pager shows around the current page.
const maxLinks = 5

// Sizes are the accepted per_page values.
var Sizes = []int{25, 50, 100}

// Request is what the client asked for. Page is 1-indexed.
type Request struct {
	Page    int
	PerPage int
}

// FromQuery reads page and per_page, falling back to page 1 at DefaultPerPage.
func FromQuery(q url.Values) Request {
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(Sizes, perPage) {
		perPage = DefaultPerPage
	}
	return Request{Page: max(page, 1), PerPage: perPage}
}

// Window is one page of a list of Total rows, with everything the pager renders
// precomputed.
type Window struct {
	Page    int // clamped to [1, Pages]
	PerPage int
	Total   int
	Pages   int // at least 1
	Offset  int

	First int // 1-indexed first row shown, 0 for an empty list
	Last  int
	Prev  int // neighbouring page numbers, 0 when there is none
	Next  int
	Links []int
}

// New clamps req against total rows.
// PRE: total >= 0
func New(req Request, total int) Window {
	perPage := req.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := max((total+perPage-1)/perPage, 1)

	w := Window{
		Page:    min(max(req.Page, 1), pages),
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	}
	w.Offset = (w.Page - 1) * perPage
	if total > 0 {
		w.First = w.Offset + 1
		w.Last = min(w.Offset+perPage, total)
	}
	if w.Page > 1 {
		w.Prev = w.Page - 1
	}
	if w.Page < pages {
		w.Next = w.Page + 1
	}

	first := max(w.Page-maxLinks/2, 1)
	last := min(first+maxLinks-1, pages)
	first = max(last-maxLinks+1, 1)
	for n := first; n <= last; n++ {
		w.Links = append(w.Links, n)
	}
	return w
}

// Paged reports whether the list spills over one page.
func (w Window) Paged() bool { return w.Total > w.PerPage }
