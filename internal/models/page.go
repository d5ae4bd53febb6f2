// ABOUTME: Page model naming which sources feed one rendered list and how long it may be
// ABOUTME: Pages replace the per-page copies of the aggregation logic with configuration

package models

// Page is one aggregation call site, such as the home feed or the events list.
type Page struct {
	Name    string      `yaml:"name" json:"name"`
	Content ContentKind `yaml:"content" json:"content"`
	Sources []string    `yaml:"sources,omitempty" json:"sources,omitempty"` // source labels; empty means every source yielding Content
	Cap     int         `yaml:"cap" json:"cap"`         // display cap, 0 means the content default
}

// Uses reports whether d feeds this page.
func (p Page) Uses(d SourceDescriptor) bool {
	if d.Yields() != p.Content {
		return false
	}
	if len(p.Sources) == 0 {
		return true
	}
	for _, label := range p.Sources {
		if label == d.Label {
			return true
		}
	}
	return false
}
