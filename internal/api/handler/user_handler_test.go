package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

func TestUserHandler_Create_PassesPlaintextToService(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (uuid.UUID, error) {
			if in.Password != "s3cret" || in.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", in)
			}
			return uuid.New(), nil
		},
	}
	h := NewUserHandler(stub, nil, discardLogger)

	c, rec := newJSONContext(e, http.MethodPost, "/users", `{"name":"Alice","login":"alice","password":"s3cret","role":1}`, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{}, nil, discardLogger)

	c, _ := newJSONContext(e, http.MethodPost, "/users", `{"name":"Alice","login":"alice","password":"x","role":7}`, "")
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserHandler_Update_ForwardsHashVerbatim(t *testing.T) {
	e := newTestEcho()
	id := uuid.New()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, got uuid.UUID, in ports.UpdateUserInput) (ports.UserView, error) {
			if in.PasswordHash != "$2a$10$already.hashed" {
				t.Fatalf("hash must be forwarded untouched, got %q", in.PasswordHash)
			}
			return ports.UserView{ID: got, Name: in.Name, Login: in.Login, Role: in.Role}, nil
		},
	}
	h := NewUserHandler(stub, nil, discardLogger)

	body := `{"name":"Alice","login":"alice","passwordHash":"$2a$10$already.hashed","role":0}`
	c, rec := newJSONContext(e, http.MethodPut, "/users/"+id.String(), body, id.String())
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("user response must not expose password data: %s", rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != float64(0) {
		t.Fatalf("role must be encoded as an integer, got %v", resp["role"])
	}
}

func TestUserHandler_Delete_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, domain.ErrUserManagesProjects
		},
	}
	h := NewUserHandler(stub, nil, discardLogger)

	id := uuid.New()
	c, _ := newJSONContext(e, http.MethodDelete, "/users/"+id.String(), "", id.String())
	if err := h.Delete(c); !errors.Is(err, domain.ErrUserManagesProjects) {
		t.Fatalf("expected ErrUserManagesProjects, got %v", err)
	}
}
