package handler

import "github.com/sweem/sweem-api/internal/core/ports"

func toCreateUserInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:         req.Name,
		Login:        req.Login,
		PasswordHash: req.PasswordHash,
		Role:         req.Role,
	}
}

func toUserResponse(v ports.UserView) userResponse {
	return userResponse{
		ID:    v.ID,
		Name:  v.Name,
		Login: v.Login,
		Role:  v.Role,
	}
}
