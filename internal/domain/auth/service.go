package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/parkeasy/parkeasy-api/internal/domain/user"
	"github.com/parkeasy/parkeasy-api/internal/pkg/password"
	"github.com/parkeasy/parkeasy-api/internal/pkg/session"
)

// AdminCredentials is the single configured admin identity. The
// password is hashed at construction so verification goes through the
// same bcrypt discipline as regular users.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// NewAdminCredentials hashes the configured admin password
func NewAdminCredentials(username, plaintext string) (*AdminCredentials, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}
	return &AdminCredentials{Username: username, PasswordHash: hash}, nil
}

// Service handles authentication business logic
type Service struct {
	userRepo user.Repository
	sessions *session.Service
	admin    *AdminCredentials
}

// NewService creates auth service
func NewService(userRepo user.Repository, sessions *session.Service, admin *AdminCredentials) *Service {
	return &Service{
		userRepo: userRepo,
		sessions: sessions,
		admin:    admin,
	}
}

// Register creates new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	// 1. Check if username or email is taken
	existing, _ := s.userRepo.GetByUsernameOrEmail(ctx, req.Username, req.Email)
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	// 2. Hash password
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create user
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if err == user.ErrDuplicate {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return NewUserResponse(u.ID, u.Username, u.Email, u.Phone, u.CreatedAt), nil
}

// Login authenticates a user and issues a session
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, u.ID, false)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:      NewUserResponse(u.ID, u.Username, u.Email, u.Phone, u.CreatedAt),
		Admin:     false,
		Token:     token,
		ExpiresIn: int(s.sessions.TTL().Seconds()),
	}, nil
}

// AdminLogin validates the configured admin identity and issues an
// admin session. The admin has no user record; the session carries
// only the admin flag.
func (s *Service) AdminLogin(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.admin.Username)) == 1
	if !usernameOK || !password.Verify(req.Password, s.admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, uuid.Nil, true)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Admin:     true,
		Token:     token,
		ExpiresIn: int(s.sessions.TTL().Seconds()),
	}, nil
}

// Logout revokes the session token
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil // Nothing to logout
	}
	return s.sessions.Revoke(ctx, token)
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, user.ErrUserNotFound
	}
	return NewUserResponse(u.ID, u.Username, u.Email, u.Phone, u.CreatedAt), nil
}
