package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/AmbHasan/My-quran-journey/shared"
)

const (
	tokenIssuer          = "my-quran-journey"
	defaultTokenDuration = 30 * 24 * time.Hour
	developmentSecretKey = "dev-secret-key-change-in-production"
)

type JWTService struct {
	context.DefaultService

	AccessTokenDuration time.Duration
	jwtSecretKey        string
	now                 func() time.Time
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

const JWT_SVC = "jwt_svc"

func NewJWTService(secretKey string, duration time.Duration) *JWTService {
	return &JWTService{
		AccessTokenDuration: duration,
		jwtSecretKey:        secretKey,
		now:                 time.Now,
	}
}

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.AccessTokenDuration = defaultTokenDuration
	svc.now = time.Now
	svc.jwtSecretKey = os.Getenv("SECRET_KEY")
	if svc.jwtSecretKey == "" {
		if os.Getenv("APP_ENV") == "production" {
			return errors.New("SECRET_KEY must be set in production")
		}
		log.Warn("SECRET_KEY not set, using development key")
		svc.jwtSecretKey = developmentSecretKey
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// Issue signs a token for userID valid for AccessTokenDuration.
func (svc *JWTService) Issue(userID string) (string, error) {
	now := svc.now()

	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(svc.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}

	return tokenString, nil
}

// Verify returns the user id carried by a valid token. Every rejection wraps
// shared.ErrInvalidToken.
func (svc *JWTService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, svc.getJWTKey,
		jwt.WithTimeFunc(svc.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", shared.ErrInvalidToken
	}

	return claims.UserID, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return []byte(svc.jwtSecretKey), nil
}

func (svc *JWTService) ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", errors.New("invalid authorization header format")
	}

	token := authHeader[7:]
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
