package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultIssuer = "hireflow"

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func jwtIssuer() string {
	if iss := os.Getenv("JWT_ISSUER"); iss != "" {
		return iss
	}
	return defaultIssuer
}

// IssueToken signs an HS256 session token carrying the user's role.
func IssueToken(userID, email, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", E(CodeInternal, "IssueToken", "JWT_SECRET is not set", nil)
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtIssuer(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
		Email: email,
		Role:  role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(raw string) (*Claims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, E(CodeInternal, "ParseToken", "JWT_SECRET is not set", nil)
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(jwtIssuer()))

	if err != nil || tok == nil || !tok.Valid {
		return nil, E(CodeUnauthorized, "ParseToken", "invalid token", err)
	}
	if claims.Subject == "" {
		return nil, E(CodeUnauthorized, "ParseToken", "missing subject", nil)
	}
	return claims, nil
}
