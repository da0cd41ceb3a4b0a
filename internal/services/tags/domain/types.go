// Package domain holds the tag entity and service contracts
package domain

import (
	"context"
	"time"
)

// Tag labels clients; names are unique case-insensitively
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// ClientCount is how many clients carry this tag, loaded with every list
	ClientCount int `json:"client_count"`
}

// CreateTagInput is the payload for creating a tag
type CreateTagInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RenameTagInput is the payload for renaming a tag
type RenameTagInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AssignTagInput attaches or detaches a tag on a client
type AssignTagInput struct {
	ClientID string `json:"client_id" validate:"required,uuid4"`
	TagID    string `json:"tag_id" validate:"required,uuid4"`
}

// ServicePort defines the service contract for tags
type ServicePort interface {
	List(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, in CreateTagInput) (Tag, error)
	Rename(ctx context.Context, id string, in RenameTagInput) (Tag, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, clientID, tagID string) error
	Unassign(ctx context.Context, clientID, tagID string) error
}
