package types

// Status is a type for the lifecycle status of a persisted resource.
// It tracks soft deletion and archival independently of any domain state
// machine (e.g. the invoice workflow status).
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
