package auth

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrPrincipalNotFound = errors.New("principal not found")
)

// Registry supplies the ground truth of known principals. Implementations
// must be read-only at runtime: the registered principals never change for
// the lifetime of the process.
//
// The demo registry holds exactly one principal per role and its Lookup
// cannot fail; the interface is fallible anyway so that an identity-provider
// backed implementation can satisfy the same contract.
type Registry interface {
	// Lookup returns the principal registered for the role.
	Lookup(ctx context.Context, role Role) (Principal, error)
}
