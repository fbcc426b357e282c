package models

// ContentKey names an admin-editable page.
type ContentKey string

const (
	ContentAbout   ContentKey = "about_content"
	ContentLanding ContentKey = "landing_content"
)

// Content is the stored text of a page, usually Markdown.
type Content struct {
	Key       ContentKey
	Value     string
	UpdatedAt int64
}
