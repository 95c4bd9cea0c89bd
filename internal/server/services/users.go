package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/dmitrijs2005/savvysnip/internal/dbx"
	"github.com/dmitrijs2005/savvysnip/internal/logging"
	"github.com/dmitrijs2005/savvysnip/internal/server/auth"
	"github.com/dmitrijs2005/savvysnip/internal/server/config"
	"github.com/dmitrijs2005/savvysnip/internal/server/models"
	"github.com/dmitrijs2005/savvysnip/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is the result of a successful registration or sign-in.
type Session struct {
	User   *models.User
	Tokens *TokenPair
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	notifier                     Notifier
	logger                       logging.Logger
	jwtSecret                    []byte
	externalSecret               []byte
	externalIssuer               string
	publicURL                    string
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	resetTokenValidityDuration   time.Duration
	bcryptCost                   int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, n Notifier, l logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		notifier:                     n,
		logger:                       l.With("module", "user_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		externalSecret:               []byte(cfg.ExternalTokenSecret),
		externalIssuer:               cfg.ExternalTokenIssuer,
		publicURL:                    strings.TrimRight(cfg.PublicURL, "/"),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		resetTokenValidityDuration:   cfg.ResetTokenValidityDuration,
		bcryptCost:                   bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrFieldEmpty
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			Provider:     models.ProviderPassword,
		})
		if err != nil {
			return err
		}

		session, err = s.openSession(ctx, tx, user)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyInUse) {
			return nil, common.ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", session.User.ID)
	return session, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrFieldEmpty
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if user.Provider != models.ProviderPassword || len(user.PasswordHash) == 0 {
		return nil, common.ErrWrongPassword
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrWrongPassword
	}

	tokens, err := s.generateTokenPair(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Tokens: tokens}, nil
}

// SignInWithCredential signs in with an external provider's ID token. The
// first sign-in of a subject creates its account and profile.
func (s *UserService) SignInWithCredential(ctx context.Context, idToken string) (*Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, common.ErrFieldEmpty
	}

	identity, err := auth.VerifyExternalToken(idToken, s.externalSecret, s.externalIssuer)
	if err != nil {
		return nil, err
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		user, err := users.GetBySubject(ctx, models.ProviderExternal, identity.Subject)
		if errors.Is(err, common.ErrorNotFound) {
			user, err = users.Create(ctx, &models.User{
				Email:    normalizeEmail(identity.Email),
				Provider: models.ProviderExternal,
				Subject:  identity.Subject,
			})
		}
		if err != nil {
			return err
		}

		session, err = s.openSession(ctx, tx, user)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyInUse) {
			return nil, common.ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("error signing in with credential: %w", err)
	}

	return session, nil
}

// openSession makes sure the profile exists and issues a token pair.
func (s *UserService) openSession(ctx context.Context, tx dbx.DBTX, user *models.User) (*Session, error) {
	err := s.repomanager.Profiles(tx).Create(ctx, &models.Profile{UID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	tokens, err := s.generateTokenPair(ctx, tx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Tokens: tokens}, nil
}

// RefreshToken redeems refreshToken for a new pair. The token is consumed
// inside the transaction, so of two concurrent redemptions only one succeeds.
// An expired token is consumed too.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var (
		tokenPair *TokenPair
		expired   bool
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}

		if token.Expires.Before(time.Now()) {
			expired = true
			return nil
		}

		tokenPair, err = s.generateTokenPair(ctx, tx, token.UserID)
		return err
	})

	if err != nil {
		return nil, err
	}
	if expired {
		return nil, common.ErrRefreshTokenExpired
	}

	return tokenPair, nil
}

// SignOut revokes refreshToken if it belongs to userID. Unknown tokens are
// ignored so signing out twice is harmless.
func (s *UserService) SignOut(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.UserID != userID {
		return nil
	}

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// RequestPasswordReset sends a reset link for password accounts. It reports
// success for unknown emails too, so callers cannot probe for accounts.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return common.ErrFieldEmpty
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "password reset for unknown email")
			return nil
		}
		return fmt.Errorf("error searching user: %w", err)
	}

	if user.Provider != models.ProviderPassword {
		return nil
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	err = s.repomanager.ResetTokens(s.db).Create(ctx, user.ID, token, s.resetTokenValidityDuration)
	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	link := s.publicURL + "/password-reset?token=" + url.QueryEscape(token)
	if err := s.notifier.SendPasswordReset(ctx, user.Email, link); err != nil {
		return fmt.Errorf("error sending reset link: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token, sets the new password and revokes
// every refresh token of the account. The token is deleted in the same
// transaction, so it can be redeemed once even under concurrent requests.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return common.ErrFieldEmpty
	}

	var expired bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rt, err := s.repomanager.ResetTokens(tx).Consume(ctx, token)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error consuming reset token: %w", err)
		}

		if rt.Expires.Before(time.Now()) {
			expired = true
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		if err := s.repomanager.Users(tx).UpdatePasswordHash(ctx, rt.UserID, hash); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}
		if err := s.repomanager.RefreshTokens(tx).DeleteAllByUser(ctx, rt.UserID); err != nil {
			return fmt.Errorf("error revoking refresh tokens: %w", err)
		}
		return nil
	})

	if err != nil {
		return err
	}
	if expired {
		return common.ErrResetTokenExpired
	}
	return nil
}

// DeleteAccount removes the identity account, then every category with its
// snips, then the profile. All steps share one transaction.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("%w: %v", common.ErrDeleteFailed, err)
		}
		if err := s.repomanager.Snips(tx).DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("%w: snips: %v", common.ErrDataDeleteFailed, err)
		}
		if err := s.repomanager.Categories(tx).DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("%w: categories: %v", common.ErrDataDeleteFailed, err)
		}
		if err := s.repomanager.Profiles(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("%w: profile: %v", common.ErrDataDeleteFailed, err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error(ctx, "account delete failed", "user_id", userID, "error", err)
		if errors.Is(err, common.ErrDeleteFailed) || errors.Is(err, common.ErrDataDeleteFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrDeleteFailed, err)
	}

	s.logger.Info(ctx, "Account deleted", "user_id", userID)
	return nil
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) generateRefreshToken() (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID string) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshtoken, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(db).Create(ctx, userID, refreshtoken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshtoken}, nil
}
