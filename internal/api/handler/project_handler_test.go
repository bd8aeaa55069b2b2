package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

func TestProjectHandler_Create_ParsesDates(t *testing.T) {
	e := newTestEcho()
	clientID, managerID := uuid.New(), uuid.New()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, in ports.CreateProjectInput) (uuid.UUID, error) {
			if in.ClientID != clientID || in.ManagerID != managerID {
				t.Fatalf("unexpected references: %+v", in)
			}
			if !in.StartDate.Equal(domain.NewDate(2024, time.January, 15)) || in.ActualEndDate != nil {
				t.Fatalf("unexpected dates: %+v", in)
			}
			return uuid.New(), nil
		},
	}
	h := NewProjectHandler(stub, nil, discardLogger)

	body := `{"clientId":"` + clientID.String() + `","name":"Rollout","startDate":"2024-01-15",` +
		`"plannedEndDate":"2024-03-01","actualEndDate":null,"managerId":"` + managerID.String() + `"}`
	c, rec := newJSONContext(e, http.MethodPost, "/projects", body, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProjectHandler_Create_BadDate(t *testing.T) {
	e := newTestEcho()
	h := NewProjectHandler(&stubProjectService{}, nil, discardLogger)

	c, _ := newJSONContext(e, http.MethodPost, "/projects", `{"name":"x","startDate":"15/01/2024"}`, "")
	if err := h.Create(c); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestProjectHandler_Update_IgnoresClientID(t *testing.T) {
	e := newTestEcho()
	id := uuid.New()
	owner := uuid.New()
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, got uuid.UUID, in ports.UpdateProjectInput) (ports.ProjectView, error) {
			return ports.ProjectView{ID: got, ClientID: owner, Name: in.Name, StartDate: in.StartDate, PlannedEndDate: in.PlannedEndDate}, nil
		},
	}
	h := NewProjectHandler(stub, nil, discardLogger)

	body := `{"clientId":"` + uuid.New().String() + `","name":"Renamed","startDate":"2024-01-01","plannedEndDate":"2024-02-01","managerId":"` + uuid.New().String() + `"}`
	c, rec := newJSONContext(e, http.MethodPut, "/projects/"+id.String(), body, id.String())
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["clientId"] != owner.String() {
		t.Fatalf("client must come from the stored project, got %v", resp["clientId"])
	}
	if resp["startDate"] != "2024-01-01" || resp["actualEndDate"] != nil {
		t.Fatalf("unexpected date encoding: %s", rec.Body.String())
	}
}
