package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies the access tokens issued by the HRIS backend. Both sides
// share the HS256 secret and the claim names.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// GenerateAccessToken signs an access token for a. Token issuance belongs
	// to the HRIS backend; this exists for tests and local tooling.
	GenerateAccessToken(a actor.Actor, ttl time.Duration) (token string, expiresAt int64, err error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(a actor.Actor, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"employee_id": a.ID,
		"company_id":  a.CompanyID,
		"role":        string(a.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
