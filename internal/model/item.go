package model

import "time"

// Item is a tracked item. Names are unique across all items.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Count       int        `json:"count"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// DefaultCount is the count assigned when a payload omits it.
const DefaultCount = 1

// ItemInput is the create/update payload. Updates are full-replace: fields
// missing from the payload are reset to their defaults, not left untouched.
type ItemInput struct {
	Name        string `json:"name"`
	Count       *int   `json:"count"`
	Description string `json:"description"`
}

// Validate checks the payload before it reaches the store.
func (in ItemInput) Validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if in.Count != nil && *in.Count < 0 {
		return &ValidationError{Field: "count", Reason: "must not be negative"}
	}
	return nil
}

// CountOrDefault resolves the optional count field.
func (in ItemInput) CountOrDefault() int {
	if in.Count == nil {
		return DefaultCount
	}
	return *in.Count
}
