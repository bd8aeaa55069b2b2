package domain

import "github.com/google/uuid"

// Client is a customer that owns projects.
type Client struct {
	ID                uuid.UUID
	Name              string
	Address           string
	ProjectsTotal     uint32
	ProjectsCompleted uint32
}
