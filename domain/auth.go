package domain

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID string
}

// TokenValidator validates an opaque caller token. The engine only consumes
// the verdict; the token format is the validator's concern.
type TokenValidator interface {
	// Validate returns ErrForbidden for tokens that fail verification.
	Validate(token string) (Principal, error)
}
