package session

// Selection is the operator's sheet link and the tabs found behind it.
type Selection struct {
	LinkText   string
	ResolvedID string
	Tabs       []string
	ActiveTab  string
}

// ApplyTabs replaces the tab list. The active tab survives when it is
// still listed, otherwise the first tab becomes active.
func (s *Selection) ApplyTabs(tabs []string) {
	s.Tabs = append([]string(nil), tabs...)
	if len(s.Tabs) == 0 {
		s.ActiveTab = ""
		return
	}
	if !s.hasTab(s.ActiveTab) {
		s.ActiveTab = s.Tabs[0]
	}
}

// SelectTab makes name active if it is a known tab.
func (s *Selection) SelectTab(name string) bool {
	if !s.hasTab(name) {
		return false
	}
	s.ActiveTab = name
	return true
}

// CycleTab moves the active tab by delta, wrapping around.
func (s *Selection) CycleTab(delta int) {
	if len(s.Tabs) == 0 {
		return
	}
	idx := 0
	for i, t := range s.Tabs {
		if t == s.ActiveTab {
			idx = i
			break
		}
	}
	n := len(s.Tabs)
	s.ActiveTab = s.Tabs[((idx+delta)%n+n)%n]
}

func (s *Selection) hasTab(name string) bool {
	if name == "" {
		return false
	}
	for _, t := range s.Tabs {
		if t == name {
			return true
		}
	}
	return false
}
