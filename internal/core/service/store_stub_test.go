package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store with snapshot/rollback transactions
// ---------------------------------------------------------------------------

type memTable[E any] struct {
	rows map[uuid.UUID]E
	id   func(*E) uuid.UUID
	// failOn names an operation ("insert", "update", "delete") that returns errStoreDown.
	failOn string
	// locked records LockForReference calls in order.
	locked []uuid.UUID
}

var errStoreDown = errors.New("store down")

func newMemTable[E any](id func(*E) uuid.UUID) *memTable[E] {
	return &memTable[E]{rows: make(map[uuid.UUID]E), id: id}
}

func (t *memTable[E]) snapshot() map[uuid.UUID]E {
	out := make(map[uuid.UUID]E, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

func (t *memTable[E]) Count(context.Context) (int64, error) {
	return int64(len(t.rows)), nil
}

func (t *memTable[E]) List(_ context.Context, offset, limit int) ([]*E, error) {
	ids := make([]uuid.UUID, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	var out []*E
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		row := t.rows[ids[i]]
		out = append(out, &row)
	}
	return out, nil
}

func (t *memTable[E]) FindByID(_ context.Context, id uuid.UUID) (*E, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (t *memTable[E]) LockForReference(_ context.Context, id uuid.UUID) error {
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.locked = append(t.locked, id)
	return nil
}

func (t *memTable[E]) Insert(_ context.Context, e *E) error {
	if t.failOn == "insert" {
		return errStoreDown
	}
	t.rows[t.id(e)] = *e
	return nil
}

func (t *memTable[E]) Update(_ context.Context, e *E) error {
	if t.failOn == "update" {
		return errStoreDown
	}
	if _, ok := t.rows[t.id(e)]; !ok {
		return domain.ErrNotFound
	}
	t.rows[t.id(e)] = *e
	return nil
}

func (t *memTable[E]) Delete(_ context.Context, id uuid.UUID) error {
	if t.failOn == "delete" {
		return errStoreDown
	}
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

type memProjects struct{ *memTable[domain.Project] }

func (p memProjects) DeleteByClient(_ context.Context, clientID uuid.UUID) (int64, error) {
	var n int64
	for id, row := range p.rows {
		if row.ClientID == clientID {
			delete(p.rows, id)
			n++
		}
	}
	return n, nil
}

func (p memProjects) CountByManager(_ context.Context, managerID uuid.UUID) (int64, error) {
	var n int64
	for _, row := range p.rows {
		if row.ManagerID == managerID {
			n++
		}
	}
	return n, nil
}

type memUsers struct{ *memTable[domain.User] }

func (u memUsers) ExistsByLogin(_ context.Context, login string, exclude uuid.UUID) (bool, error) {
	for id, row := range u.rows {
		if row.Login == login && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

// Insert mirrors the unique index on login.
func (u memUsers) Insert(ctx context.Context, e *domain.User) error {
	if taken, _ := u.ExistsByLogin(ctx, e.Login, e.ID); taken {
		return domain.ErrLoginTaken
	}
	return u.memTable.Insert(ctx, e)
}

type memStore struct {
	mu       sync.Mutex
	clients  *memTable[domain.Client]
	projects *memTable[domain.Project]
	users    *memTable[domain.User]
	txs      int
}

func newMemStore() *memStore {
	return &memStore{
		clients:  newMemTable(func(c *domain.Client) uuid.UUID { return c.ID }),
		projects: newMemTable(func(p *domain.Project) uuid.UUID { return p.ID }),
		users:    newMemTable(func(u *domain.User) uuid.UUID { return u.ID }),
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(context.Context, ports.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs++

	if err := ctx.Err(); err != nil {
		return err
	}

	clients, projects, users := s.clients.snapshot(), s.projects.snapshot(), s.users.snapshot()
	err := fn(ctx, memUoW{s})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.clients.rows, s.projects.rows, s.users.rows = clients, projects, users
	}
	return err
}

func (s *memStore) Ping(context.Context) error  { return nil }
func (s *memStore) Close(context.Context) error { return nil }
func (s *memStore) Name() string                { return "memory" }

type memUoW struct{ s *memStore }

func (u memUoW) Clients() ports.ClientRepository   { return u.s.clients }
func (u memUoW) Projects() ports.ProjectRepository { return memProjects{u.s.projects} }
func (u memUoW) Users() ports.UserRepository       { return memUsers{u.s.users} }

// ---------------------------------------------------------------------------
// Recording observer and stub hasher
// ---------------------------------------------------------------------------

type recordingObserver struct {
	created    map[string]int
	deleted    map[string]int
	dependents int64
	conflicts  []string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{created: map[string]int{}, deleted: map[string]int{}}
}

func (o *recordingObserver) Created(entity string) { o.created[entity]++ }

func (o *recordingObserver) Deleted(entity string, dependents int64) {
	o.deleted[entity]++
	o.dependents += dependents
}

func (o *recordingObserver) Conflict(entity, reason string) {
	o.conflicts = append(o.conflicts, entity+":"+reason)
}

type stubHasher struct {
	calls int
	err   error
}

func (h *stubHasher) Hash(plain string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "$stub$" + plain, nil
}
