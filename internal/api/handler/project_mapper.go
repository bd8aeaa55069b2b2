package handler

import "github.com/sweem/sweem-api/internal/core/ports"

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		ClientID:       req.ClientID,
		Name:           req.Name,
		StartDate:      req.StartDate,
		PlannedEndDate: req.PlannedEndDate,
		ActualEndDate:  req.ActualEndDate,
		ManagerID:      req.ManagerID,
	}
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:           req.Name,
		StartDate:      req.StartDate,
		PlannedEndDate: req.PlannedEndDate,
		ActualEndDate:  req.ActualEndDate,
		ManagerID:      req.ManagerID,
	}
}

func toProjectResponse(v ports.ProjectView) projectResponse {
	return projectResponse{
		ID:             v.ID,
		ClientID:       v.ClientID,
		Name:           v.Name,
		StartDate:      v.StartDate,
		PlannedEndDate: v.PlannedEndDate,
		ActualEndDate:  v.ActualEndDate,
		ManagerID:      v.ManagerID,
	}
}
