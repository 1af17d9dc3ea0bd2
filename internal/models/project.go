package models

// LinkType distinguishes a project's deployed site from its source code.
type LinkType string

const (
	LinkLive LinkType = "live"
	LinkCode LinkType = "code"
)

// ProjectLink is one outbound link on a project card.
type ProjectLink struct {
	Type  LinkType `json:"type"`
	URL   string   `json:"url"`
	Label string   `json:"label,omitempty"`
}

// IsLive reports whether the link points at a running deployment. Anything
// else ("code", "github", ...) is treated as a source link.
func (l ProjectLink) IsLive() bool {
	return l.Type == LinkLive
}

// Project represents a portfolio project
type Project struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Tags        []string      `json:"tags"`
	Links       []ProjectLink `json:"links"`
}
