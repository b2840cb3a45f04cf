package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"contractvault-be/internal/config"
	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/pkg/mailer"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"
	"contractvault-be/pkg/events"
	pkgNats "contractvault-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 15 * time.Minute

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pkgNats.Publisher
	audit          IAuditService
	cfg            *config.Config
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pkgNats.Publisher,
	audit IAuditService,
	cfg *config.Config,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		audit:          audit,
		cfg:            cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		Type:         entity.UserType(req.Type),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	setOptional(&user.JobTitle, req.JobTitle)
	setOptional(&user.BusinessName, req.BusinessName)
	setOptional(&user.BusinessSector, req.BusinessSector)
	setOptional(&user.Phone, req.Phone)

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	if s.eventPublisher != nil {
		evt := events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id": user.Id,
			"email":   user.Email,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}
	s.audit.Record(ctx, &user.Id, "auth.register", fmt.Sprintf("user %s registered", user.Email))

	return s.authResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Validation("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Validation("invalid email or password")
	}

	s.audit.Record(ctx, &user.Id, "auth.login", fmt.Sprintf("user %s logged in", user.Email))
	return s.authResponse(user)
}

func (s *authService) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AuthResponse, error) {
	resp, err := s.Login(ctx, &dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	if resp.User.Role != string(entity.UserRoleAdmin) {
		return nil, apperror.NotFound("admin account not found")
	}
	return resp, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		// Do not reveal whether the address is registered.
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return apperror.Internal(err)
	}

	otp := &entity.PasswordResetOTP{
		Id:        uuid.New(),
		UserId:    user.Id,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreatePasswordResetOTP(ctx, otp); err != nil {
		return apperror.Internal(err)
	}

	if err := s.emailService.SendOTP(user.Email, code); err != nil {
		return apperror.Internal(err)
	}

	s.audit.Record(ctx, &user.Id, "auth.forgot_password", fmt.Sprintf("otp issued for %s", user.Email))
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.Validation("invalid code")
	}

	otp, err := uow.UserRepository().FindPasswordResetOTP(ctx,
		specification.OwnedBy{UserID: user.Id},
		specification.ByCode{Code: req.Code},
		specification.Unused{},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if otp == nil || time.Now().After(otp.ExpiresAt) {
		return apperror.Validation("invalid or expired code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().MarkOTPUsed(ctx, otp.Id); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash)); err != nil {
		return apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.audit.Record(ctx, &user.Id, "auth.reset_password", fmt.Sprintf("password reset for %s", user.Email))
	return nil
}

func (s *authService) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.GenerateToken(user.Id, string(user.Role), s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Type:      string(user.Type),
		PlanId:    user.PlanId,
		CreatedAt: user.CreatedAt,
	}
}

func setOptional(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
