package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// PasswordHasher turns a plaintext password into a version-tagged hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserService manages users. Create hashes the supplied password; Update
// stores the supplied PasswordHash as given. Users that still manage projects
// cannot be deleted.
type UserService struct {
	*crudService[domain.User, ports.CreateUserInput, ports.UpdateUserInput, ports.UserView]
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(store ports.Store, hasher PasswordHasher, logger zerolog.Logger, opts ...Option) *UserService {
	rules := entityRules[domain.User, ports.CreateUserInput, ports.UpdateUserInput, ports.UserView]{
		entity:   "user",
		notFound: domain.ErrUserNotFound,
		repo: func(uow ports.UnitOfWork) ports.Repository[domain.User] {
			return uow.Users()
		},
		build: func(id uuid.UUID, in ports.CreateUserInput) (*domain.User, error) {
			return buildUser(hasher, id, in)
		},
		apply:        applyUser,
		validate:     validateUser,
		verifyRefs:   verifyUniqueLogin,
		beforeDelete: restrictManagedProjects,
		view:         toUserView,
	}
	return &UserService{crudService: newCRUDService(store, rules, logger, opts)}
}

// buildUser validates before hashing so bad requests never pay for a hash.
func buildUser(hasher PasswordHasher, id uuid.UUID, in ports.CreateUserInput) (*domain.User, error) {
	u := &domain.User{
		ID:    id,
		Name:  in.Name,
		Login: in.Login,
		Role:  in.Role,
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, domain.Invalid("password", "is required")
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	return u, nil
}

func applyUser(u *domain.User, in ports.UpdateUserInput) {
	u.Name = in.Name
	u.Login = in.Login
	u.Role = in.Role
	if in.PasswordHash != "" {
		u.PasswordHash = in.PasswordHash
	}
}

func validateUser(u *domain.User) error {
	if err := requireText("name", u.Name, maxNameLen); err != nil {
		return err
	}
	if err := requireText("login", u.Login, maxLoginLen); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return domain.Invalid("role", "is not a known role")
	}
	return nil
}

func toUserView(u *domain.User) ports.UserView {
	return ports.UserView{
		ID:    u.ID,
		Name:  u.Name,
		Login: u.Login,
		Role:  u.Role,
	}
}
