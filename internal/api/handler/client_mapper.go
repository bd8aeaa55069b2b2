package handler

import "github.com/sweem/sweem-api/internal/core/ports"

func toCreateClientInput(req clientRequest) ports.CreateClientInput {
	return ports.CreateClientInput{
		Name:              req.Name,
		Address:           req.Address,
		ProjectsTotal:     req.ProjectsTotal,
		ProjectsCompleted: req.ProjectsCompleted,
	}
}

func toUpdateClientInput(req clientRequest) ports.UpdateClientInput {
	return ports.UpdateClientInput{
		Name:              req.Name,
		Address:           req.Address,
		ProjectsTotal:     req.ProjectsTotal,
		ProjectsCompleted: req.ProjectsCompleted,
	}
}

func toClientResponse(v ports.ClientView) clientResponse {
	return clientResponse{
		ID:                v.ID,
		Name:              v.Name,
		Address:           v.Address,
		ProjectsTotal:     v.ProjectsTotal,
		ProjectsCompleted: v.ProjectsCompleted,
	}
}
