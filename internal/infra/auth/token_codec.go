// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskpad/config"
	domainerrors "taskpad/internal/domain/errors"
	"taskpad/internal/domain/service"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using
// HMAC-SHA256 signed JWTs. Tokens carry no expiry claim: whether a session is
// still live is decided by the token ledger, not by time, so that logout is
// effective even though signatures keep verifying.
type jwtCodec struct {
	secret []byte
}

// NewJWTCodec is the constructor for jwtCodec.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session signing secret must be provided")
	}

	return &jwtCodec{secret: []byte(cfg.SecretKey.Session)}, nil
}

// Encode serializes (subjectID, purpose) into signed claims. The issued-at
// claim is informational only, but it keeps tokens from separate logins
// distinct so revoking one session does not take out another.
func (c *jwtCodec) Encode(subjectID uuid.UUID, purpose string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     subjectID.String(),
		"purpose": purpose,
		"iat":     jwt.NewNumericDate(time.Now()),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Decode verifies the signature and recovers the subject identity. The
// library verifies the signature before claims are handed back, so an
// unverified payload is never read. Every failure mode (malformed token,
// wrong secret, non-HMAC signing method, unparsable subject, or a purpose
// outside the expected set) collapses to the same domain error.
func (c *jwtCodec) Decode(tokenString string, wantPurpose string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("token signature verification failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("unexpected claims type")
	}

	purpose, ok := claims["purpose"].(string)
	if !ok || purpose != wantPurpose {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("token purpose mismatch")
	}

	subject, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("subject missing from token")
	}

	subjectID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("invalid subject format in token")
	}

	return subjectID, nil
}
