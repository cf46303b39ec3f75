package auth

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RoleMismatchError indicates well-formed credentials that do not belong to
// the claimed role's registered account.
type RoleMismatchError struct {
	Claimed Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("account is not authorized for %s login", e.Claimed.Title())
}

// CredentialValidator decides whether submitted credentials match the
// registered principal for the claimed role. It is a pure function of its
// inputs and the registry's (immutable) contents; it has no side effects.
type CredentialValidator struct {
	registry   Registry
	validate   *validator.Validate
	translator ut.Translator
}

func NewCredentialValidator(registry Registry, validate *validator.Validate, translator ut.Translator) *CredentialValidator {
	return &CredentialValidator{registry: registry, validate: validate, translator: translator}
}

// Validate checks input shape first, without touching the registry, then
// compares the submitted email to the claimed role's registered account.
//
// The password value is only shape-checked here: the demo registry stores no
// secrets. A real identity provider hangs its hash verification off this
// step (see storage/registry/pg).
func (v *CredentialValidator) Validate(ctx context.Context, creds Credentials) (Principal, error) {
	if err := creds.Validate(v.validate, v.translator); err != nil {
		return Principal{}, err
	}

	p, err := v.registry.Lookup(ctx, creds.ClaimedRole)
	if err != nil {
		if errors.Cause(err) == ErrPrincipalNotFound {
			return Principal{}, &RoleMismatchError{Claimed: creds.ClaimedRole}
		}
		return Principal{}, errors.Wrap(err, "looking up principal for role")
	}
	if creds.Email != p.Email {
		return Principal{}, &RoleMismatchError{Claimed: creds.ClaimedRole}
	}
	return p, nil
}
