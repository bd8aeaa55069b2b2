package handler

import "github.com/google/uuid"

// --- Request / Response types ---

type clientRequest struct {
	Name              string `json:"name"              validate:"required,max=200"`
	Address           string `json:"address"           validate:"max=500"`
	ProjectsTotal     uint32 `json:"projectsTotal"`
	ProjectsCompleted uint32 `json:"projectsCompleted" validate:"ltefield=ProjectsTotal"`
}

type clientResponse struct {
	ID                uuid.UUID `json:"id"                swaggertype:"string" format:"uuid"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	ProjectsTotal     uint32    `json:"projectsTotal"`
	ProjectsCompleted uint32    `json:"projectsCompleted"`
}
