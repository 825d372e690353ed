package session

import "github.com/pluqqy/certadmin/pkg/sheets"

// Total is the number of rows available for navigation.
func (s *Session) Total() int {
	return len(s.dataset.Records())
}

// Index is the current row.
func (s *Session) Index() int {
	return s.index
}

// Page is the current page of the row list.
func (s *Session) Page() int {
	return s.page
}

// Pages is the number of row pages.
func (s *Session) Pages() int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// Select moves to row i. Out-of-range indices are ignored.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= s.Total() || i == s.index {
		return false
	}
	s.index = i
	s.page = i / PageSize
	return true
}

// Next moves to the following row.
func (s *Session) Next() bool {
	return s.Select(s.index + 1)
}

// Prev moves to the preceding row.
func (s *Session) Prev() bool {
	return s.Select(s.index - 1)
}

// NextPage shows the next page of rows without changing the current row.
func (s *Session) NextPage() bool {
	if s.page+1 >= s.Pages() {
		return false
	}
	s.page++
	return true
}

// PrevPage shows the previous page of rows.
func (s *Session) PrevPage() bool {
	if s.page == 0 {
		return false
	}
	s.page--
	return true
}

// PageEntry is one row in the visible page.
type PageEntry struct {
	Index   int
	Name    string
	Current bool
}

// PageRows lists the rows on the current page.
func (s *Session) PageRows() []PageEntry {
	records := s.dataset.Records()
	start := s.page * PageSize
	if start >= len(records) {
		return nil
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	out := make([]PageEntry, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, PageEntry{
			Index:   i,
			Name:    sheets.DisplayName(s.dataset, i, s.NameColumn),
			Current: i == s.index,
		})
	}
	return out
}
