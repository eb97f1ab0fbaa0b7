package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"ielts_backend/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 40

	// codeTTL is how long a verification code stays valid.
	codeTTL = 15 * time.Minute

	// dummyHash keeps Login timing the same whether or not the email exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence of users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	UpdateCredential(ctx context.Context, id uuid.UUID, apiKey, language string) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JWTGenerator signs access tokens.
type JWTGenerator interface {
	GenerateToken(userID uuid.UUID, email string, superuser bool) (string, error)
}

// CodeSender delivers verification codes to users.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// TokenRevoker records logged-out tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type authUsecase struct {
	users   UserRepository
	tokens  JWTGenerator
	codes   CodeSender
	revoker TokenRevoker

	now     func() time.Time
	newCode func() (string, error)
}

// NewAuthUsecase creates the signup, verification and login use cases.
// revoker may be nil, in which case Logout does nothing.
func NewAuthUsecase(users UserRepository, tokens JWTGenerator, codes CodeSender, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:   users,
		tokens:  tokens,
		codes:   codes,
		revoker: revoker,
		now:     time.Now,
		newCode: generateCode,
	}
}

// generateCode returns a random zero-padded 6-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < minPasswordLength || n > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// Signup registers an unverified user and sends them a verification code.
func (u *authUsecase) Signup(ctx context.Context, email, password string, fullName *string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := u.newCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	expires := u.now().Add(codeTTL)

	user := &entity.User{
		Email:            normalizeEmail(email),
		Password:         string(hashed),
		FullName:         fullName,
		IsActive:         true,
		VerificationCode: &code,
		CodeExpiresAt:    &expires,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return err
	}

	// The account exists at this point; a delivery failure is logged, not returned.
	if err := u.codes.SendVerificationCode(ctx, user.Email, code); err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to send verification code")
	}
	return nil
}

// Verify confirms the email address with the code sent at signup.
func (u *authUsecase) Verify(ctx context.Context, email, code string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrInvalidVerificationCode
		}
		return err
	}
	if user.IsVerified {
		return nil
	}
	if !user.CodeMatches(code, u.now()) {
		return ErrInvalidVerificationCode
	}
	return u.users.MarkVerified(ctx, user.ID)
}

// Login checks the password and returns a signed access token.
// bcrypt runs even for unknown emails so response time does not reveal them.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !isNotFound(err) {
		return "", err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInactiveUser
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, user.IsSuperuser)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token until it expires.
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if u.revoker == nil || tokenID == "" {
		return nil
	}
	return u.revoker.Revoke(ctx, tokenID, expiresAt)
}
