// Package auth implements registration, login and session lookup.
//
// Sessions are stateless JWTs: logout only clears the client cookie, an
// already-issued token stays valid until its 7-day expiry. Adding revocation
// would need a server-side blacklist and is intentionally out of scope.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/internal/domain/entity"
	"github.com/jhoicas/leads-api/internal/domain/repository"
	"github.com/jhoicas/leads-api/pkg/jwt"
)

// BcryptCost is the fixed password hashing work factor.
const BcryptCost = 12

const storeTimeout = 5 * time.Second

// dummyHash keeps login timing flat: when the email is unknown we still run a
// full-cost bcrypt compare so the two rejection paths are indistinguishable.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), BcryptCost)

// JWTConfig token issuing settings.
type JWTConfig struct {
	Secret string
	Issuer string
}

// UseCase registration, login and current-user lookup.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewUseCase builds the auth usecase.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg}
}

// Register creates a user if the email is free (case-sensitive exact match),
// hashes the password with bcrypt and issues a token. The existence pre-check
// gives the friendly error; the unique index on users.email is what actually
// closes the race, and its violation maps to the same ErrEmailAlreadyExists.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{Token: token, User: dto.ToUserResponse(user)}, nil
}

// Login verifies the password and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials with the same cost: the unknown
// path burns a bcrypt compare against a dummy hash to avoid account
// enumeration by timing.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{Token: token, User: dto.ToUserResponse(user)}, nil
}

// Me returns the caller's user summary.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}
