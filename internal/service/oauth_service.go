package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contractvault-be/internal/config"
	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"
	"contractvault-be/pkg/events"
	pkgNats "contractvault-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error)
}

type oauthService struct {
	uowFactory     unitofwork.RepositoryFactory
	googleConf     *oauth2.Config
	eventPublisher *pkgNats.Publisher
	audit          IAuditService
	cfg            *config.Config
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pkgNats.Publisher,
	audit IAuditService,
	cfg *config.Config,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory:     uowFactory,
		googleConf:     conf,
		eventPublisher: eventPublisher,
		audit:          audit,
		cfg:            cfg,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", apperror.Validationf("unsupported provider %q", provider)
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error) {
	if provider != "google" {
		return nil, apperror.Validationf("unsupported provider %q", provider)
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("code exchange failed: %w", err))
	}

	googleUser, err := fetchGoogleUser(token.AccessToken)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if googleUser.Email == "" {
		return nil, apperror.Validation("provider returned no email")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if user == nil {
		providerName := "google"
		user = &entity.User{
			Id:        uuid.New(),
			Email:     googleUser.Email,
			Name:      googleUser.Name,
			Role:      entity.UserRoleUser,
			Type:      entity.UserTypePerson,
			Provider:  &providerName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, apperror.Internal(err)
		}

		if s.eventPublisher != nil {
			evt := events.New(events.TypeUserRegistered, map[string]interface{}{
				"user_id":  user.Id,
				"email":    user.Email,
				"provider": providerName,
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
			}
		}
	}

	s.audit.Record(ctx, &user.Id, "auth.oauth_login", fmt.Sprintf("user %s via google", user.Email))

	jwtToken, err := serverutils.GenerateToken(user.Id, string(user.Role), s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.AuthResponse{
		Token: jwtToken,
		User:  toUserResponse(user),
	}, nil
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUser(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &info, nil
}
