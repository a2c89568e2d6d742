package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "goldenkey/internal/errors"
)

// SessionClaims binds a session cookie to a user id. Sessions carry no
// expiry; validity is signature-only and identity is re-resolved against the
// store on every request.
type SessionClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// RecoveryClaims binds a password-reset token to an email address. The token
// is additionally matched against the single-use copy stored on the user
// record, which is what actually invalidates it.
type RecoveryClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session and recovery tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given HMAC secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Secret exposes the signing key for middleware that verifies tokens itself.
func (s *TokenService) Secret() []byte {
	return s.secret
}

// IssueSession produces a signed session token for the user.
func (s *TokenService) IssueSession(userID uuid.UUID) (string, error) {
	claims := &SessionClaims{UserID: userID.String()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession verifies a session token and returns the embedded user id.
func (s *TokenService) VerifySession(tokenString string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}

// IssueRecovery produces a signed password-reset token for the email.
func (s *TokenService) IssueRecovery(email string) (string, error) {
	claims := &RecoveryClaims{Email: email}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign recovery token: %w", err)
	}
	return signed, nil
}

// VerifyRecovery verifies a recovery token and returns the embedded email.
func (s *TokenService) VerifyRecovery(tokenString string) (string, error) {
	claims := &RecoveryClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", apperrors.ErrInvalidToken
	}
	return claims.Email, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return apperrors.ErrInvalidToken
	}
	return nil
}
