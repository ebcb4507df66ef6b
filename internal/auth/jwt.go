package auth

import (
	"fmt"

	"github.com/Guyuepp/Comment-Hub/domain"
	"github.com/golang-jwt/jwt/v5"
)

type jwtValidator struct {
	secret []byte
}

var _ domain.TokenValidator = (*jwtValidator)(nil)

// NewJWTValidator validates HMAC-signed caller tokens. The engine treats
// the token as opaque; only the pass/fail verdict and the subject matter.
func NewJWTValidator(secret []byte) *jwtValidator {
	return &jwtValidator{
		secret: secret,
	}
}

func (v *jwtValidator) Validate(token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrForbidden
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, domain.ErrForbidden
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Principal{}, domain.ErrForbidden
	}
	return domain.Principal{UserID: sub}, nil
}
