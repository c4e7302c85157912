package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/leads-api/internal/application/auth"
	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
)

// memUsers is an in-memory UserRepository for usecase tests.
type memUsers struct {
	byID map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*entity.User)}
}

func (m *memUsers) Create(ctx context.Context, user *entity.User) error {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newUseCase(users *memUsers) *auth.UseCase {
	return auth.NewUseCase(users, auth.JWTConfig{Secret: "test-secret", Issuer: "leads-api-test"})
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
		Name:     "Alice",
	}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)

	out, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, "Alice", out.User.Name)

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ValidatesInput(t *testing.T) {
	uc := newUseCase(newMemUsers())

	in := registerReq()
	in.Email = "not-an-email"
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = registerReq()
	in.Password = "short"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_HappyPath(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "alice@example.com", out.User.Email)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLogin_RejectionsAreUniform(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever!",
	})
	_, errWrongPw := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestMe(t *testing.T) {
	users := newMemUsers()
	uc := newUseCase(users)

	reg, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	me, err := uc.Me(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = uc.Me(context.Background(), "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
