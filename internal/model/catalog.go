package model

// Section is a named, ordered group of items tracked independently.
// Name doubles as the prefix of the completion keys.
type Section struct {
	Name     string
	Title    string
	Subtitle string
	Budgeted bool
	Items    []Item
}

// TimelineStep is one entry of the day schedule. Read-only.
type TimelineStep struct {
	Time        string
	Title       string
	Description string
	Icon        string
}

// Catalog is everything the checklist shows besides completion state.
type Catalog struct {
	Title    string
	Tagline  string
	Sections []Section
	Timeline []TimelineStep
}

// Section looks a section up by name.
func (c Catalog) Section(name string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Budgeted returns the section whose prices make up the cost total.
func (c Catalog) Budgeted() (Section, bool) {
	for _, s := range c.Sections {
		if s.Budgeted {
			return s, true
		}
	}
	return Section{}, false
}

// Names lists section names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.Sections))
	for _, s := range c.Sections {
		out = append(out, s.Name)
	}
	return out
}
