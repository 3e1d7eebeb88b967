package services

import (
	"context"
	"fmt"
	"time"

	"server/src/config"
	"server/src/models"
	"server/src/repositories"
	"server/src/schemas"
	aws_handler "server/src/utils/aws"
	redis_utils "server/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultRiskProfile = "moderate"
	defaultKYCStatus   = "unverified"

	refreshKeyPrefix = "refresh:"
)

type AuthServiceI interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error)
}

type AuthService struct {
	cfg       *config.Config
	users     repositories.UserRepository
	redis     *redis_utils.RedisHandler
	tokenAuth *jwtauth.JWTAuth
}

// NewAuthService resolves the signing secret (from config, or from AWS
// Secrets Manager when auth.awsSecretId is set) and builds the token
// authority shared with the router's Verifier middleware.
func NewAuthService(cfg *config.Config, users repositories.UserRepository, redis *redis_utils.RedisHandler) (*AuthService, error) {
	secret := cfg.Auth.JWTSecret
	if cfg.Auth.AWSSecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.Auth.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AWS handler: %w", err)
		}
		secret, err = awsHandler.SecretManager.GetSecretValue(cfg.Auth.AWSSecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch JWT secret: %w", err)
		}
	}
	if secret == "" {
		return nil, fmt.Errorf("auth.jwtSecret is not configured")
	}

	return &AuthService{
		cfg:       cfg,
		users:     users,
		redis:     redis,
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
	}, nil
}

// TokenAuth exposes the token authority for the router's Verifier middleware.
func (s *AuthService) TokenAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *AuthService) Register(ctx context.Context, req *schemas.RegisterRequest) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewError(KindConflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	riskProfile := req.RiskProfile
	if riskProfile == "" {
		riskProfile = defaultRiskProfile
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		RiskProfile: riskProfile,
		KYCStatus:   defaultKYCStatus,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewError(KindUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NewError(KindUnauthorized, "invalid email or password")
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates the token pair. The presented refresh token must verify
// and still exist in the store; rotation revokes it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*schemas.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(s.tokenAuth, refreshToken)
	if err != nil {
		return nil, NewError(KindUnauthorized, "invalid or expired refresh token")
	}
	claims := token.PrivateClaims()
	if claims["type"] != "refresh" {
		return nil, NewError(KindUnauthorized, "invalid or expired refresh token")
	}

	var userID int
	if err := s.redis.Get(ctx, refreshKeyPrefix+refreshToken, &userID); err != nil {
		return nil, NewError(KindUnauthorized, "refresh token has been revoked")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewError(KindUnauthorized, "user not found")
	}

	if err := s.redis.Delete(ctx, refreshKeyPrefix+refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user.ID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID int) (*schemas.TokenResponse, error) {
	accessTTL := time.Duration(s.cfg.Auth.AccessTokenMinutes) * time.Minute
	refreshTTL := time.Duration(s.cfg.Auth.RefreshTokenDays) * 24 * time.Hour

	accessClaims := map[string]interface{}{"user_id": userID, "type": "access"}
	jwtauth.SetIssuedNow(accessClaims)
	jwtauth.SetExpiryIn(accessClaims, accessTTL)
	_, accessToken, err := s.tokenAuth.Encode(accessClaims)
	if err != nil {
		return nil, err
	}

	refreshClaims := map[string]interface{}{"user_id": userID, "type": "refresh"}
	jwtauth.SetIssuedNow(refreshClaims)
	jwtauth.SetExpiryIn(refreshClaims, refreshTTL)
	_, refreshToken, err := s.tokenAuth.Encode(refreshClaims)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, refreshKeyPrefix+refreshToken, userID, refreshTTL); err != nil {
		return nil, err
	}

	return &schemas.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
