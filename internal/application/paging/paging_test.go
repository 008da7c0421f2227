package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  Request
	}{
		{"defaults", url.Values{}, Request{Page: 1, PerPage: DefaultPerPage}},
		{"explicit", url.Values{"page": {"3"}, "per_page": {"50"}}, Request{Page: 3, PerPage: 50}},
		{"unsupported size", url.Values{"per_page": {"20"}}, Request{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", url.Values{"page": {"-1"}}, Request{Page: 1, PerPage: DefaultPerPage}},
		{"garbage", url.Values{"page": {"two"}, "per_page": {"lots"}}, Request{Page: 1, PerPage: DefaultPerPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromQuery(tt.query))
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name                string
		req                 Request
		total               int
		page, pages, offset int
		first, last         int
		prev, next          int
	}{
		{"first of five", Request{1, 25}, 110, 1, 5, 0, 1, 25, 0, 2},
		{"middle", Request{3, 25}, 110, 3, 5, 50, 51, 75, 2, 4},
		{"short last page", Request{5, 25}, 110, 5, 5, 100, 101, 110, 4, 0},
		{"past the end", Request{9, 25}, 110, 5, 5, 100, 101, 110, 4, 0},
		{"empty", Request{1, 25}, 0, 1, 1, 0, 0, 0, 0, 0},
		{"exact fit", Request{1, 50}, 50, 1, 1, 0, 1, 50, 0, 0},
		{"zero size uses default", Request{1, 0}, 30, 1, 2, 0, 1, 25, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(tt.req, tt.total)
			assert.Equal(t, tt.page, w.Page, "page")
			assert.Equal(t, tt.pages, w.Pages, "pages")
			assert.Equal(t, tt.offset, w.Offset, "offset")
			assert.Equal(t, tt.first, w.First, "first")
			assert.Equal(t, tt.last, w.Last, "last")
			assert.Equal(t, tt.prev, w.Prev, "prev")
			assert.Equal(t, tt.next, w.Next, "next")
		})
	}
}

func TestNew_Links(t *testing.T) {
	tests := []struct {
		page, pages int
		want        []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		w := New(Request{Page: tt.page, PerPage: 25}, tt.pages*25)
		assert.Equal(t, tt.want, w.Links, "page %d of %d", tt.page, tt.pages)
	}
}

func TestWindow_Paged(t *testing.T) {
	assert.False(t, New(Request{1, 25}, 25).Paged())
	assert.True(t, New(Request{1, 25}, 26).Paged())
}
