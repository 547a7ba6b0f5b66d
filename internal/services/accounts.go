package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
	"scooter-rental/internal/repository"
	"scooter-rental/internal/utils"
)

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AccountOptions struct {
	// CodeTTL bounds the life of a verification code; zero never expires.
	CodeTTL time.Duration
	// MaxAttempts caps wrong code submissions per window; zero disables.
	MaxAttempts int
}

// AccountService drives an account through Unverified, Verified and
// ResetRequested.
type AccountService struct {
	accounts repository.AccountRepository
	tokens   *TokenService
	attempts AttemptCounter
	mailer   Mailer
	log      log.FieldLogger
	opts     AccountOptions
	now      func() time.Time
}

// NewAccountService wires the state machine. attempts and mailer are
// optional: without attempts there is no lockout, without a mailer codes are
// only logged.
func NewAccountService(
	accounts repository.AccountRepository,
	tokens *TokenService,
	attempts AttemptCounter,
	mailer Mailer,
	logger log.FieldLogger,
	opts AccountOptions,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokens:   tokens,
		attempts: attempts,
		mailer:   mailer,
		log:      logger,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.Account, error) {
	email := normalizeEmail(in.Email)

	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.ErrConflict
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &models.Account{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     email,
		Password:  hash,
	}
	if err := s.newCode(a); err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	s.sendCode(a, "Verify your account", "Welcome %s,\n\nYour verification code is: %d\n")
	s.log.WithField("account_id", a.ID).Info("account created")
	return a, nil
}

func (s *AccountService) VerifyCode(ctx context.Context, email string, code int) (*models.Account, error) {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, a, code); err != nil {
		return nil, err
	}

	a.IsVerified = true
	if err := s.accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login returns a signed token for a verified account with a matching
// password. An unverified account is rejected before the password is
// looked at.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if !a.IsVerified {
		return "", apperr.ErrNotVerified
	}
	if err := utils.CheckPasswordHash(a.Password, password); err != nil {
		return "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if err := s.newCode(a); err != nil {
		return err
	}
	a.ForgotPassw = true
	a.IsVerified = false
	if err := s.accounts.Save(ctx, a); err != nil {
		return err
	}

	s.sendCode(a, "Password reset", "Hello %s,\n\nYour password reset code is: %d\n")
	return nil
}

func (s *AccountService) ConfirmPasswordReset(ctx context.Context, email string, code int, newPassword string) error {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if !a.ForgotPassw {
		return apperr.ErrResetNotRequested
	}
	if err := s.checkCode(ctx, a, code); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	// old tokens are cut off before the new hash is stored
	if err := s.tokens.RevokeAccount(ctx, a.ID); err != nil {
		return err
	}
	a.Password = hash
	a.ForgotPassw = false
	a.IsVerified = true
	return s.accounts.Save(ctx, a)
}

func (s *AccountService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if err := utils.CheckPasswordHash(a.Password, oldPassword); err != nil {
		return apperr.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.tokens.RevokeAccount(ctx, a.ID); err != nil {
		return err
	}
	a.Password = hash
	return s.accounts.Save(ctx, a)
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AccountService) Delete(ctx context.Context, id uint) (*models.Account, error) {
	a, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeAccount(ctx, a.ID); err != nil {
		s.log.WithError(err).WithField("account_id", a.ID).Error("could not revoke tokens of deleted account")
	}
	return a, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, id uint, firstName, lastName string) (*models.Account, error) {
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.FirstName = firstName
	a.LastName = lastName
	if err := s.accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AccountService) Logout(ctx context.Context, c *Claims) error {
	return s.tokens.Revoke(ctx, c)
}

func (s *AccountService) newCode(a *models.Account) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	a.VerificationCode = code
	a.CodeExpiresAt = nil
	if s.opts.CodeTTL > 0 {
		exp := s.now().Add(s.opts.CodeTTL)
		a.CodeExpiresAt = &exp
	}
	return nil
}

// checkCode enforces lockout, then expiry, then equality. Only a mismatch
// counts as a failed attempt; a match clears the counter.
func (s *AccountService) checkCode(ctx context.Context, a *models.Account, code int) error {
	limited := s.attempts != nil && s.opts.MaxAttempts > 0
	if limited {
		n, err := s.attempts.Failures(ctx, a.Email)
		if err != nil {
			return apperr.Store(err)
		}
		if n >= int64(s.opts.MaxAttempts) {
			return apperr.ErrTooManyAttempts
		}
	}
	if a.CodeExpired(s.now()) {
		return apperr.ErrCodeExpired
	}
	if a.VerificationCode != code {
		if limited {
			if _, err := s.attempts.Fail(ctx, a.Email); err != nil {
				return apperr.Store(err)
			}
		}
		return apperr.ErrInvalidCode
	}
	if limited {
		if err := s.attempts.Reset(ctx, a.Email); err != nil {
			s.log.WithError(err).Warn("could not reset code attempts")
		}
	}
	return nil
}

// sendCode mails the code in the background. Without a mailer the code is
// logged at info so local runs can finish signup. bodyFormat takes the first
// name and the code.
func (s *AccountService) sendCode(a *models.Account, subject, bodyFormat string) {
	body := fmt.Sprintf(bodyFormat, a.FirstName, a.VerificationCode)
	entry := s.log.WithField("account_id", a.ID)
	if s.mailer == nil {
		entry.WithField("code", a.VerificationCode).Info("smtp not configured, verification code not mailed")
		return
	}
	to := a.Email
	go func() {
		if err := s.mailer.Send(to, subject, body); err != nil {
			entry.WithError(err).Warn("could not send verification code")
		}
	}()
}
