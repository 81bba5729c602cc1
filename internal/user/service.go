package user

import (
	"context"
	"fmt"
	"strings"

	"shrimati-be/internal/events"
	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, name, email, password string) (*User, error)
	Activate(ctx context.Context, userID uint, token string) (*User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID uint, token, newPassword string) error
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo      Repository
	tokens    *TokenMaker
	publisher events.Publisher
	baseURL   string
}

func NewService(repo Repository, tokens *TokenMaker, publisher events.Publisher, baseURL string) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{repo: repo, tokens: tokens, publisher: publisher, baseURL: baseURL}
}

// Signup creates an inactive account and emits an activation email
// event. The account cannot log in until the emailed link is followed.
func (s *service) Signup(ctx context.Context, name, email, password string) (*User, error) {
	log := logger.FromCtx(ctx)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token := s.tokens.MakeActivationToken(u)
	link := fmt.Sprintf("%s/auth/activate/%d/%s", s.baseURL, u.ID, token)
	if err := s.publisher.Publish(ctx, events.EmailActivation, map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"link":    link,
	}); err != nil {
		log.Warn("failed to publish activation email", zap.Error(err))
	}

	log.Info("user signed up",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
	)

	return u, nil
}

// Activate flips is_active after verifying the emailed token. Tokens
// sign the is_active flag, so a second use of the same link fails.
func (s *service) Activate(ctx context.Context, userID uint, token string) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}

	if !s.tokens.VerifyActivationToken(token, u) {
		return nil, ErrInvalidToken
	}

	if err := s.repo.SetActive(ctx, u.ID); err != nil {
		return nil, err
	}
	u.IsActive = true

	logger.FromCtx(ctx).Info("account activated", zap.Uint("user_id", u.ID))
	return u, nil
}

// Login checks credentials and returns a signed JWT. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrInactiveAccount
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// RequestPasswordReset emits a reset email event. Unknown emails
// succeed silently so the endpoint cannot be used to probe accounts.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		log.Debug("password reset requested for unknown email")
		return nil
	}

	token := s.tokens.MakeResetToken(u)
	link := fmt.Sprintf("%s/auth/reset/%d/%s", s.baseURL, u.ID, token)
	if err := s.publisher.Publish(ctx, events.EmailPasswordReset, map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"link":    link,
	}); err != nil {
		log.Warn("failed to publish reset email", zap.Error(err))
	}

	return nil
}

// ResetPassword sets a new password after verifying the emailed token.
// Tokens sign the current hash, so changing the password invalidates
// the link.
func (s *service) ResetPassword(ctx context.Context, userID uint, token, newPassword string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidToken
	}

	if !s.tokens.VerifyResetToken(token, u) {
		return ErrInvalidToken
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("password reset", zap.Uint("user_id", userID))
	return nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
