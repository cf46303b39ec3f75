// Package pgreg backs the principal registry with postgres. Unlike the demo
// registry it is fallible and holds many principals per role; Lookup only
// succeeds for roles with a single registered account, which is where a real
// identity provider (lookup by credential identity plus secret verification)
// takes over via LookupByEmail.
package pgreg

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/auth"
)

var (
	// errors
	ErrAmbiguousRole = errors.New("multiple principals registered for role")
)

type Registry struct {
	db *sqlx.DB
}

var _ auth.Registry = (*Registry)(nil) // interface compliance check

// Open connects to the principals database.
func Open(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	return db, errors.Wrap(err, "connecting to principals DB")
}

func NewRegistry(db *sqlx.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) Lookup(ctx context.Context, role auth.Role) (auth.Principal, error) {
	var principals []auth.Principal
	err := r.db.SelectContext(ctx, &principals,
		`SELECT id, email, role, display_name FROM principals WHERE role = $1`, role)
	if err != nil {
		return auth.Principal{}, errors.Wrap(err, "querying principals by role")
	}
	switch len(principals) {
	case 0:
		return auth.Principal{}, auth.ErrPrincipalNotFound
	case 1:
		return principals[0], nil
	default:
		return auth.Principal{}, ErrAmbiguousRole
	}
}

// LookupByEmail finds a principal by its credential identity.
func (r *Registry) LookupByEmail(ctx context.Context, email string) (auth.Principal, error) {
	var p auth.Principal
	err := r.db.GetContext(ctx, &p,
		`SELECT id, email, role, display_name FROM principals WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return auth.Principal{}, auth.ErrPrincipalNotFound
	}
	return p, errors.Wrap(err, "querying principal by email")
}
