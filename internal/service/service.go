package service

import (
	"errors"

	"go-commerce-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pagination is re-exported for callers that do not import the repository layer.
type Pagination = repository.Pagination

// Actor is the authenticated caller of a write.
type Actor struct {
	ID       uuid.UUID
	Email    string
	Username string
}

// AuditID is the value recorded in created_by/updated_by.
func (a Actor) AuditID() string {
	if a.ID == uuid.Nil {
		return "system"
	}
	return a.ID.String()
}

// Publisher pushes realtime events to connected clients.
type Publisher interface {
	Publish(eventType, action, actorID string, data any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, string, any) {}

func publisherOr(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// Page is one window of a list endpoint.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// notFound swaps a missing-row error for the service's own sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
