package services

import (
	"context"

	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/utils"
)

const msgDuplicateUser = "Email or Username already registered"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenSigner issues signed session tokens.
type TokenSigner interface {
	Sign(claims utils.Claims) (string, error)
}

// RegisterInput is the payload accepted for new accounts.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     *string
	Bio      string
	Role     string
}

// AuthService registers accounts and issues session tokens.
type AuthService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	signer TokenSigner
}

// NewAuthService wires an AuthService.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, signer TokenSigner) *AuthService {
	return &AuthService{users: users, hasher: hasher, signer: signer}
}

// Register creates a user after checking email and username are free.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return createUser(ctx, s.users, s.hasher, in)
}

// Login verifies credentials and returns a signed token for the user.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, FromStore(err, msgDuplicateUser)
	}
	if user == nil || !s.hasher.Verify(password, user.Password) {
		return "", nil, BadRequest("Invalid credentials")
	}

	token, err := s.signer.Sign(utils.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		utils.Sugar.Errorw("sign token failed", "userId", user.ID, "err", err)
		return "", nil, BadRequest("Failed to issue token")
	}
	return token, user, nil
}

// createUser is shared by registration and the admin creation route.
func createUser(ctx context.Context, users repository.UserRepository, hasher PasswordHasher, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, BadRequest("Invalid role")
	}

	existing, err := users.FindConflicting(ctx, in.Email, in.Username, 0)
	if err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	if existing != nil {
		return nil, Conflict(msgDuplicateUser)
	}

	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, BadRequest(err.Error())
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: hash,
		Name:     in.Name,
		Bio:      in.Bio,
		Role:     role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, FromStore(err, msgDuplicateUser)
	}
	return user, nil
}
