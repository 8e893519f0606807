package web

// DeleteButtonView holds data for the delete button template fragment
type DeleteButtonView struct {
	URL         string // htmx DELETE target, e.g. "/tasks/abc123"
	FallbackURL string // plain form POST target, e.g. "/tasks/abc123/delete"
	Label       string // accessible name, e.g. "Delete Buy milk"
}
