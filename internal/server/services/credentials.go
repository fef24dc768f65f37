// Package services contains server-side business logic. CredentialService
// handles sign-up, sign-in and password reset on top of the user and salt
// stores and the token service.
package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/cryptox"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/dmitrijs2005/blogauth/internal/server/notify"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
)

// Flow names used as error prefixes and log fields.
const (
	OpSignUp         = "auth.signup"
	OpSignIn         = "auth.signin"
	OpForgotPassword = "auth.forgot_password"
	OpRefresh        = "auth.refresh"
	OpResetPassword  = "auth.reset_password"
	OpFindUser       = "users.find"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

// SignInResult is the token pair plus the public profile of the user.
type SignInResult struct {
	TokenPair
	ID    string
	Name  string
	Email string
}

type ResetPasswordInput struct {
	UserID   string
	Token    string
	Password string
}

// CredentialService is stateless; the stores are the only shared state, so
// it is safe for concurrent use.
type CredentialService struct {
	repomanager  repomanager.RepositoryManager
	tokens       *auth.TokenService
	notifier     notify.Notifier
	logger       logging.Logger
	clientURL    string
	hashParams   cryptox.HashParams
	storeTimeout time.Duration
}

// NewCredentialService wires the service from its collaborators and cfg.
func NewCredentialService(m repomanager.RepositoryManager, tokens *auth.TokenService, n notify.Notifier, cfg *config.Config, logger logging.Logger) *CredentialService {
	return &CredentialService{
		repomanager: m,
		tokens:      tokens,
		notifier:    n,
		logger:      logger.With("module", "credentials"),
		clientURL:   strings.TrimRight(cfg.ClientURL, "/"),
		hashParams: cryptox.HashParams{
			Time:      cfg.HashTime,
			MemoryKiB: cfg.HashMemoryKiB,
			Threads:   cfg.HashThreads,
		},
		storeTimeout: cfg.StoreTimeout,
	}
}

// SignUp registers a new user and returns a fresh token pair.
func (s *CredentialService) SignUp(ctx context.Context, in SignUpInput) (*TokenPair, error) {
	existing, err := s.findUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, common.Wrap(OpSignUp, err)
	}
	if existing != nil {
		return nil, common.Wrap(OpSignUp, common.E(common.KindConflict, "User Already Exists", nil))
	}

	salt, err := cryptox.GenerateSalt(s.hashParams)
	if err != nil {
		return nil, common.Wrap(OpSignUp, common.E(common.KindCrypto, "salt generation failed", err))
	}
	hash, err := cryptox.HashPassword(in.Password, salt)
	if err != nil {
		return nil, common.Wrap(OpSignUp, common.E(common.KindCrypto, "password hashing failed", err))
	}

	user, err := s.createUserWithSalt(ctx, &models.User{Name: in.Name, Email: in.Email, Password: hash}, salt)
	if err != nil {
		return nil, common.Wrap(OpSignUp, err)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, common.Wrap(OpSignUp, err)
	}

	s.logger.Info(ctx, "user signed up", "svc", OpSignUp, "user_id", user.ID)
	return pair, nil
}

// SignIn checks the password against the stored hash and returns a token
// pair with the user's profile.
func (s *CredentialService) SignIn(ctx context.Context, in SignInInput) (*SignInResult, error) {
	user, err := s.findUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, common.Wrap(OpSignIn, err)
	}
	if user == nil {
		return nil, common.Wrap(OpSignIn, common.E(common.KindNotFound, "User Not Found", nil))
	}

	salt, err := s.findSalt(ctx, user.ID)
	if err != nil {
		return nil, common.Wrap(OpSignIn, err)
	}
	if salt == nil {
		s.logger.Error(ctx, "user has no salt", "svc", OpSignIn, "user_id", user.ID)
		return nil, common.Wrap(OpSignIn, common.E(common.KindNotFound, "Salt Not Found", nil))
	}

	ok, err := cryptox.VerifyPassword(in.Password, salt.Salt, user.Password)
	if err != nil {
		return nil, common.Wrap(OpSignIn, common.E(common.KindCrypto, "password hashing failed", err))
	}
	if !ok {
		return nil, common.Wrap(OpSignIn, common.E(common.KindInvalidCredentials, "Invalid Credentials", nil))
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, common.Wrap(OpSignIn, err)
	}

	return &SignInResult{TokenPair: *pair, ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// ForgotPassword mails a password-reset link to the user and returns it.
// On delivery failure no link is returned.
func (s *CredentialService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return "", common.Wrap(OpForgotPassword, err)
	}
	if user == nil {
		return "", common.Wrap(OpForgotPassword, common.E(common.KindNotFound, "User Not Exists", nil))
	}

	token, err := s.tokens.Sign(auth.KindPasswordReset, user.ID)
	if err != nil {
		return "", common.Wrap(OpForgotPassword, err)
	}

	link := s.resetLink(token, user.ID)
	if err := s.notifier.Send(ctx, link, user.Email); err != nil {
		s.logger.Warn(ctx, "reset link not delivered", "svc", OpForgotPassword, "user_id", user.ID, "error", err.Error())
		return "", common.Wrap(OpForgotPassword, common.E(common.KindDeliveryFailure, "Unable to Send Password Reset Email", err))
	}

	s.logger.Info(ctx, "reset link sent", "svc", OpForgotPassword, "user_id", user.ID)
	return link, nil
}

// Refresh exchanges a valid refresh token for a new pair, provided the user
// still exists.
func (s *CredentialService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(ctx, auth.KindRefresh, refreshToken)
	if err != nil {
		return nil, common.Wrap(OpRefresh, err)
	}

	user, err := s.findUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, common.Wrap(OpRefresh, err)
	}
	if user == nil {
		return nil, common.Wrap(OpRefresh, common.E(common.KindNotFound, "User Not Found", nil))
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, common.Wrap(OpRefresh, err)
	}
	return pair, nil
}

// ResetPassword sets a new password using a password-reset token issued to
// in.UserID. The user's salt is kept; only the hash changes.
func (s *CredentialService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	claims, err := s.tokens.Verify(ctx, auth.KindPasswordReset, in.Token)
	if err != nil {
		return common.Wrap(OpResetPassword, err)
	}
	if claims.Subject != in.UserID {
		s.logger.Debug(ctx, "reset token subject mismatch", "svc", OpResetPassword, "user_id", in.UserID)
		return common.Wrap(OpResetPassword, common.E(common.KindInvalidToken, "invalid token", nil))
	}

	salt, err := s.findSalt(ctx, in.UserID)
	if err != nil {
		return common.Wrap(OpResetPassword, err)
	}
	if salt == nil {
		return common.Wrap(OpResetPassword, common.E(common.KindNotFound, "Salt Not Found", nil))
	}

	hash, err := cryptox.HashPassword(in.Password, salt.Salt)
	if err != nil {
		return common.Wrap(OpResetPassword, common.E(common.KindCrypto, "password hashing failed", err))
	}

	sctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if _, err := s.repomanager.Users(s.repomanager.Conn()).Update(sctx, in.UserID, models.UserUpdate{Password: &hash}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.Wrap(OpResetPassword, common.E(common.KindNotFound, "User Not Found", nil))
		}
		return common.Wrap(OpResetPassword, storeError("update user", err))
	}

	s.logger.Info(ctx, "password reset", "svc", OpResetPassword, "user_id", in.UserID)
	return nil
}

// FindUser returns the profile of userID.
func (s *CredentialService) FindUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.findUserByID(ctx, userID)
	if err != nil {
		return nil, common.Wrap(OpFindUser, err)
	}
	if user == nil {
		return nil, common.Wrap(OpFindUser, common.E(common.KindNotFound, "User Not Found", nil))
	}
	return user, nil
}

func (s *CredentialService) issuePair(userID string) (*TokenPair, error) {
	access, err := s.tokens.Sign(auth.KindAccess, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Sign(auth.KindRefresh, userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *CredentialService) resetLink(token, userID string) string {
	return s.clientURL + "/password-reset?token=" + url.QueryEscape(token) + "&id=" + url.QueryEscape(userID)
}
