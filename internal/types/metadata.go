package types

// Metadata is a map of string key-value pairs attached to domain entities
// for storing additional host-defined information.
type Metadata map[string]string
