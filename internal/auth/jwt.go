package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token audiences keep session and verification tokens from being
// accepted in each other's place.
const (
	audienceSession = "swiftship:session"
	audienceVerify  = "swiftship:verify"
)

// Claims represents the session JWT claims.
type Claims struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenExpiry is the default session token lifetime.
const TokenExpiry = 7 * 24 * time.Hour

// VerificationExpiry is how long an email verification link stays valid.
const VerificationExpiry = 72 * time.Hour

// GenerateToken creates a new session JWT for an account with a unique JTI.
func GenerateToken(secret string, accountID int64, email, role string) (string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("generating JTI: %w", err)
	}

	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatInt(accountID, 10),
			Audience:  jwt.ClaimStrings{audienceSession},
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return sign(secret, claims)
}

// ValidateToken parses and validates a session JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(secret, tokenStr, audienceSession, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateVerificationToken creates a signed email verification token.
func GenerateVerificationToken(secret string, accountID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			Audience:  jwt.ClaimStrings{audienceVerify},
			ExpiresAt: jwt.NewNumericDate(now.Add(VerificationExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return sign(secret, claims)
}

// ValidateVerificationToken checks a verification token and returns the
// account ID and email it was issued for.
func ValidateVerificationToken(secret, tokenStr string) (int64, string, error) {
	claims := &Claims{}
	if err := parse(secret, tokenStr, audienceVerify, claims); err != nil {
		return 0, "", err
	}
	return claims.AccountID, claims.Email, nil
}

func sign(secret string, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func parse(secret, tokenStr, audience string, claims *Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// generateJTI creates a random token ID.
func generateJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
