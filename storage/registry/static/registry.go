// Package staticreg provides the built-in demo principal registry: exactly
// one principal per role, fixed at construction.
package staticreg

import (
	"context"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/auth"
)

type registry struct {
	table map[auth.Role]auth.Principal
}

var _ auth.Registry = (*registry)(nil) // interface compliance check

// NewRegistry builds the demo registry. IDs are derived from the role name
// so they are stable across restarts.
func NewRegistry() auth.Registry {
	table := make(map[auth.Role]auth.Principal, len(auth.AllRoles))
	for _, entry := range []struct {
		role auth.Role
		name string
	}{
		{auth.RoleStudent, "Demo Student"},
		{auth.RoleFaculty, "Demo Faculty"},
		{auth.RoleAdmin, "Demo Admin"},
		{auth.RoleGovernment, "Demo Reviewer"},
	} {
		table[entry.role] = auth.Principal{
			ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte("shule/principals/"+string(entry.role))).String(),
			Email:       string(entry.role) + "@example.com",
			Role:        entry.role,
			DisplayName: entry.name,
		}
	}
	return &registry{table: table}
}

func (r *registry) Lookup(_ context.Context, role auth.Role) (auth.Principal, error) {
	if p, ok := r.table[role]; ok {
		return p, nil
	}
	return auth.Principal{}, auth.ErrPrincipalNotFound
}
