package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

type fixture struct {
	store    *memStore
	observer *recordingObserver
	hasher   *stubHasher
	clients  *ClientService
	projects *ProjectService
	users    *UserService
}

func newFixture() *fixture {
	store := newMemStore()
	obs := newRecordingObserver()
	hasher := &stubHasher{}
	return &fixture{
		store:    store,
		observer: obs,
		hasher:   hasher,
		clients:  NewClientService(store, discardLogger, WithObserver(obs)),
		projects: NewProjectService(store, discardLogger, WithObserver(obs)),
		users:    NewUserService(store, hasher, discardLogger, WithObserver(obs)),
	}
}

func (f *fixture) mustClient(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id, err := f.clients.Create(context.Background(), ports.CreateClientInput{Name: name, Address: "Main St 1", ProjectsTotal: 2, ProjectsCompleted: 1})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return id
}

func (f *fixture) mustUser(t *testing.T, login string) uuid.UUID {
	t.Helper()
	id, err := f.users.Create(context.Background(), ports.CreateUserInput{Name: "User " + login, Login: login, Password: "pw-" + login, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func (f *fixture) mustProject(t *testing.T, clientID, managerID uuid.UUID) uuid.UUID {
	t.Helper()
	id, err := f.projects.Create(context.Background(), projectInput(clientID, managerID))
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return id
}

func projectInput(clientID, managerID uuid.UUID) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		ClientID:       clientID,
		Name:           "Migration",
		StartDate:      domain.NewDate(2024, time.January, 1),
		PlannedEndDate: domain.NewDate(2024, time.January, 31),
		ManagerID:      managerID,
	}
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

func TestClientService_CreateThenGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := ports.CreateClientInput{Name: "Acme", Address: "1 Road", ProjectsTotal: 5, ProjectsCompleted: 3}
	id, err := f.clients.Create(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := f.clients.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := ports.ClientView{ID: id, Name: "Acme", Address: "1 Road", ProjectsTotal: 5, ProjectsCompleted: 3}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if f.observer.created["client"] != 1 {
		t.Errorf("expected one created observation, got %d", f.observer.created["client"])
	}
}

func TestClientService_CreateValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		in    ports.CreateClientInput
		field string
	}{
		{"empty name", ports.CreateClientInput{Name: "  "}, "name"},
		{"completed over total", ports.CreateClientInput{Name: "Acme", ProjectsTotal: 1, ProjectsCompleted: 2}, "projectsCompleted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.clients.Create(context.Background(), tt.in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatal("validation error must match ErrValidation")
			}
		})
	}
	if f.store.txs != 0 {
		t.Errorf("validation failures must not open a transaction, got %d", f.store.txs)
	}
}

func TestClientService_GetAllPaginates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		f.mustClient(t, "client")
	}

	tests := []struct {
		page, wantItems int
	}{
		{1, 10},
		{3, 5},
		{10, 0},
	}
	for _, tt := range tests {
		p, err := f.clients.GetAll(ctx, domain.NewPageRequest(tt.page, 10))
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if len(p.Items) != tt.wantItems || p.TotalCount != 25 || p.TotalPages() != 3 {
			t.Errorf("page %d: items=%d total=%d pages=%d", tt.page, len(p.Items), p.TotalCount, p.TotalPages())
		}
	}

	first, _ := f.clients.GetAll(ctx, domain.NewPageRequest(1, 10))
	again, _ := f.clients.GetAll(ctx, domain.NewPageRequest(1, 10))
	for i := range first.Items {
		if first.Items[i].ID != again.Items[i].ID {
			t.Fatal("repeated listing must return the same order")
		}
	}
}

func TestClientService_UpdateMissing(t *testing.T) {
	f := newFixture()

	_, err := f.clients.Update(context.Background(), uuid.New(), ports.UpdateClientInput{Name: "Ghost"})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(f.store.clients.rows) != 0 {
		t.Fatal("update of a missing id must not create a record")
	}
}

func TestClientService_UpdateKeepsIdentity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.mustClient(t, "Acme")

	view, err := f.clients.Update(ctx, id, ports.UpdateClientInput{Name: "Acme 2", Address: "", ProjectsTotal: 9, ProjectsCompleted: 9})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.ID != id || view.Name != "Acme 2" || view.ProjectsTotal != 9 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestClientService_UpdateInvalidLeavesRecord(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.mustClient(t, "Acme")

	_, err := f.clients.Update(ctx, id, ports.UpdateClientInput{Name: ""})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := f.clients.GetByID(ctx, id)
	if got.Name != "Acme" {
		t.Fatalf("record changed after failed update: %+v", got)
	}
}

func TestClientService_DeleteCascadesProjects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	manager := f.mustUser(t, "boss")
	doomed := f.mustClient(t, "Doomed")
	kept := f.mustClient(t, "Kept")
	p1 := f.mustProject(t, doomed, manager)
	p2 := f.mustProject(t, doomed, manager)
	p3 := f.mustProject(t, kept, manager)

	ok, err := f.clients.Delete(ctx, doomed)
	if err != nil || !ok {
		t.Fatalf("expected successful delete, got %v %v", ok, err)
	}

	for _, id := range []uuid.UUID{p1, p2} {
		if _, err := f.projects.GetByID(ctx, id); !errors.Is(err, domain.ErrProjectNotFound) {
			t.Errorf("project %s should be gone, got %v", id, err)
		}
	}
	if _, err := f.projects.GetByID(ctx, p3); err != nil {
		t.Errorf("project of another client must survive: %v", err)
	}
	if f.observer.dependents != 2 {
		t.Errorf("expected 2 cascaded projects, got %d", f.observer.dependents)
	}
}

func TestClientService_DeleteIsAtomic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	manager := f.mustUser(t, "boss")
	client := f.mustClient(t, "Acme")
	project := f.mustProject(t, client, manager)

	f.store.clients.failOn = "delete"
	if _, err := f.clients.Delete(ctx, client); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	f.store.clients.failOn = ""

	if _, err := f.clients.GetByID(ctx, client); err != nil {
		t.Fatalf("client must survive a failed delete: %v", err)
	}
	if _, err := f.projects.GetByID(ctx, project); err != nil {
		t.Fatalf("cascade must roll back with the failed delete: %v", err)
	}
}

func TestClientService_DeleteMissing(t *testing.T) {
	f := newFixture()

	ok, err := f.clients.Delete(context.Background(), uuid.New())
	if err != nil || ok {
		t.Fatalf("expected false, nil; got %v, %v", ok, err)
	}
}

func TestClientService_CancelledContextWritesNothing(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.clients.Create(ctx, ports.CreateClientInput{Name: "Late"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(f.store.clients.rows) != 0 {
		t.Fatal("cancelled create must not persist")
	}
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

func TestProjectService_CreateThenGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := f.mustClient(t, "Acme")
	manager := f.mustUser(t, "boss")

	in := projectInput(client, manager)
	end := domain.NewDate(2024, time.February, 2)
	in.ActualEndDate = &end

	id, err := f.projects.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := f.projects.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != id || got.ClientID != client || got.ManagerID != manager || got.Name != in.Name {
		t.Fatalf("unexpected view %+v", got)
	}
	if !got.StartDate.Equal(in.StartDate) || !got.PlannedEndDate.Equal(in.PlannedEndDate) {
		t.Fatalf("dates not preserved: %+v", got)
	}
	if got.ActualEndDate == nil || !got.ActualEndDate.Equal(end) {
		t.Fatalf("actual end date not preserved: %v", got.ActualEndDate)
	}
}

func TestProjectService_CreateRejectsDanglingReferences(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t, "Acme")
	manager := f.mustUser(t, "boss")

	tests := []struct {
		name  string
		in    ports.CreateProjectInput
		field string
	}{
		{"unknown client", projectInput(uuid.New(), manager), "clientId"},
		{"unknown manager", projectInput(client, uuid.New()), "managerId"},
		{"missing client", projectInput(uuid.Nil, manager), "clientId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.projects.Create(context.Background(), tt.in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
	if len(f.store.projects.rows) != 0 {
		t.Fatal("no project may be written on validation failure")
	}
}

func TestProjectService_LocksReferencedRecords(t *testing.T) {
	f := newFixture()
	clientID := f.mustClient(t, "Acme")
	managerID := f.mustUser(t, "pm")

	projectID := f.mustProject(t, clientID, managerID)
	if got := f.store.clients.locked; len(got) != 1 || got[0] != clientID {
		t.Fatalf("expected client %s locked on create, got %v", clientID, got)
	}
	if got := f.store.users.locked; len(got) != 1 || got[0] != managerID {
		t.Fatalf("expected manager %s locked on create, got %v", managerID, got)
	}

	other := f.mustUser(t, "pm2")
	_, err := f.projects.Update(context.Background(), projectID, ports.UpdateProjectInput{
		Name:           "Moved",
		StartDate:      domain.NewDate(2024, time.January, 1),
		PlannedEndDate: domain.NewDate(2024, time.June, 1),
		ManagerID:      other,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := f.store.users.locked; len(got) != 2 || got[1] != other {
		t.Fatalf("expected new manager locked on update, got %v", got)
	}
}

func TestProjectService_LockOfMissingReferenceIsValidation(t *testing.T) {
	f := newFixture()
	managerID := f.mustUser(t, "pm")

	_, err := f.projects.Create(context.Background(), ports.CreateProjectInput{
		ClientID:       uuid.New(),
		Name:           "Orphan",
		StartDate:      domain.NewDate(2024, time.January, 1),
		PlannedEndDate: domain.NewDate(2024, time.June, 1),
		ManagerID:      managerID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.store.clients.locked) != 0 {
		t.Fatalf("nothing should be locked for a missing client: %v", f.store.clients.locked)
	}
}

func TestProjectService_DateOrdering(t *testing.T) {
	f := newFixture()
	client := f.mustClient(t, "Acme")
	manager := f.mustUser(t, "boss")

	in := projectInput(client, manager)
	in.PlannedEndDate = domain.NewDate(2023, time.December, 31)
	if _, err := f.projects.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	in = projectInput(client, manager)
	early := domain.NewDate(2023, time.June, 1)
	in.ActualEndDate = &early
	if _, err := f.projects.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for actual end date, got %v", err)
	}
}

func TestProjectService_UpdateNeverMovesClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := f.mustClient(t, "Acme")
	manager := f.mustUser(t, "boss")
	other := f.mustUser(t, "other")
	id := f.mustProject(t, client, manager)

	view, err := f.projects.Update(ctx, id, ports.UpdateProjectInput{
		Name:           "Renamed",
		StartDate:      domain.NewDate(2024, time.March, 1),
		PlannedEndDate: domain.NewDate(2024, time.April, 1),
		ManagerID:      other,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.ID != id || view.ClientID != client {
		t.Fatalf("identity changed: %+v", view)
	}
	if view.ManagerID != other || view.Name != "Renamed" {
		t.Fatalf("mutable fields not applied: %+v", view)
	}
}

func TestProjectService_UpdateUnknownManager(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := f.mustClient(t, "Acme")
	manager := f.mustUser(t, "boss")
	id := f.mustProject(t, client, manager)

	_, err := f.projects.Update(ctx, id, ports.UpdateProjectInput{
		Name:           "Renamed",
		StartDate:      domain.NewDate(2024, time.March, 1),
		PlannedEndDate: domain.NewDate(2024, time.April, 1),
		ManagerID:      uuid.New(),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := f.projects.GetByID(ctx, id)
	if got.ManagerID != manager || got.Name != "Migration" {
		t.Fatalf("project changed after failed update: %+v", got)
	}
}

func TestProjectService_UpdateMissing(t *testing.T) {
	f := newFixture()
	_, err := f.projects.Update(context.Background(), uuid.New(), ports.UpdateProjectInput{Name: "x"})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestUserService_CreateHashesPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.users.Create(ctx, ports.CreateUserInput{Name: "Ada", Login: "ada", Password: "s3cret", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := f.store.users.rows[id]
	if stored.PasswordHash != "$stub$s3cret" {
		t.Fatalf("expected hashed password, got %q", stored.PasswordHash)
	}

	got, err := f.users.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := ports.UserView{ID: id, Name: "Ada", Login: "ada", Role: domain.RoleAdmin}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUserService_CreateValidatesBeforeHashing(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		in   ports.CreateUserInput
	}{
		{"no login", ports.CreateUserInput{Name: "Ada", Password: "x"}},
		{"no password", ports.CreateUserInput{Name: "Ada", Login: "ada"}},
		{"bad role", ports.CreateUserInput{Name: "Ada", Login: "ada", Password: "x", Role: domain.Role(7)}},
	}
	for _, tt := range tests {
		if _, err := f.users.Create(context.Background(), tt.in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tt.name, err)
		}
	}
	if f.hasher.calls != 0 {
		t.Errorf("hasher must not run for invalid input, ran %d times", f.hasher.calls)
	}
}

func TestUserService_DuplicateLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.mustUser(t, "ada")

	_, err := f.users.Create(ctx, ports.CreateUserInput{Name: "Other", Login: "ada", Password: "x"})
	if !errors.Is(err, domain.ErrLoginTaken) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected login conflict, got %v", err)
	}

	got, err := f.users.GetByID(ctx, first)
	if err != nil || got.Name != "User ada" {
		t.Fatalf("first user changed: %+v %v", got, err)
	}
	if len(f.store.users.rows) != 1 {
		t.Fatalf("expected one user, got %d", len(f.store.users.rows))
	}
	if len(f.observer.conflicts) != 1 || f.observer.conflicts[0] != "user:login_taken" {
		t.Errorf("unexpected conflicts %v", f.observer.conflicts)
	}
}

func TestUserService_UpdateLoginToTakenOne(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.mustUser(t, "ada")
	bob := f.mustUser(t, "bob")

	_, err := f.users.Update(ctx, bob, ports.UpdateUserInput{Name: "Bob", Login: "ada"})
	if !errors.Is(err, domain.ErrLoginTaken) {
		t.Fatalf("expected login conflict, got %v", err)
	}

	// Keeping one's own login is not a conflict.
	if _, err := f.users.Update(ctx, bob, ports.UpdateUserInput{Name: "Bob B", Login: "bob"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserService_UpdateStoresHashVerbatim(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.mustUser(t, "ada")
	original := f.store.users.rows[id].PasswordHash

	if _, err := f.users.Update(ctx, id, ports.UpdateUserInput{Name: "Ada", Login: "ada"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := f.store.users.rows[id].PasswordHash; got != original {
		t.Fatalf("empty hash must keep the stored one, got %q", got)
	}

	if _, err := f.users.Update(ctx, id, ports.UpdateUserInput{Name: "Ada", Login: "ada", PasswordHash: "$2a$10$precomputed"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := f.store.users.rows[id].PasswordHash; got != "$2a$10$precomputed" {
		t.Fatalf("expected hash stored verbatim, got %q", got)
	}
	if f.hasher.calls != 1 {
		t.Fatalf("update must not hash, hasher ran %d times", f.hasher.calls)
	}
}

func TestUserService_DeleteRestrictedWhileManaging(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	manager := f.mustUser(t, "boss")
	client := f.mustClient(t, "Acme")
	project := f.mustProject(t, client, manager)

	ok, err := f.users.Delete(ctx, manager)
	if ok || !errors.Is(err, domain.ErrUserManagesProjects) {
		t.Fatalf("expected restricted delete, got %v %v", ok, err)
	}

	if _, err := f.users.GetByID(ctx, manager); err != nil {
		t.Fatalf("manager must survive: %v", err)
	}
	p, err := f.projects.GetByID(ctx, project)
	if err != nil || p.ManagerID != manager {
		t.Fatalf("project must be unchanged: %+v %v", p, err)
	}

	if _, err := f.projects.Delete(ctx, project); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if ok, err := f.users.Delete(ctx, manager); err != nil || !ok {
		t.Fatalf("delete after releasing projects: %v %v", ok, err)
	}
}

func TestUserService_HasherFailure(t *testing.T) {
	f := newFixture()
	f.hasher.err = errors.New("entropy exhausted")

	_, err := f.users.Create(context.Background(), ports.CreateUserInput{Name: "Ada", Login: "ada", Password: "x"})
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(f.store.users.rows) != 0 {
		t.Fatal("no user may be stored when hashing fails")
	}
}

func TestWrap_StoreErrorsKeepCause(t *testing.T) {
	f := newFixture()
	f.store.clients.failOn = "insert"

	_, err := f.clients.Create(context.Background(), ports.CreateClientInput{Name: "Acme"})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		t.Fatalf("store failure must not look like a domain error: %v", err)
	}
}

func TestWithIDGenerator(t *testing.T) {
	fixed := uuid.MustParse("00000000-0000-4000-8000-000000000001")
	svc := NewClientService(newMemStore(), discardLogger, WithIDGenerator(func() uuid.UUID { return fixed }))

	id, err := svc.Create(context.Background(), ports.CreateClientInput{Name: "Acme"})
	if err != nil || id != fixed {
		t.Fatalf("expected fixed id, got %s %v", id, err)
	}
}
