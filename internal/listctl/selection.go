package listctl

import "sort"

// Selection is the set of entity IDs currently checked in a list view. It
// is scoped to one loaded page: selecting "all" selects exactly the IDs of
// the current page's results, never the full server-side result set.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection, optionally pre-populated with
// IDs carried over from a submitted form.
func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// SelectOne toggles membership of one ID.
func (s *Selection) SelectOne(id string, checked bool) {
	if id == "" {
		return
	}
	if checked {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// SelectAll sets or clears the selection to exactly the IDs present on the
// current page. Checking replaces any previous contents, so selections
// never leak across page changes.
func (s *Selection) SelectAll(pageIDs []string, checked bool) {
	s.ids = make(map[string]struct{}, len(pageIDs))
	if !checked {
		return
	}
	for _, id := range pageIDs {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// Has reports whether the ID is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected IDs.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected IDs in stable order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}
