package session

import (
	"context"
	"sync/atomic"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/nav"
)

var (
	// ErrLoginPending rejects a Submit while another attempt is in flight.
	ErrLoginPending = errors.New("a login attempt is already in progress")
)

// CredentialChecker decides accept/reject for submitted credentials. It
// models a fallible call to a remote identity collaborator, hence the
// context.
type CredentialChecker interface {
	Validate(ctx context.Context, creds auth.Credentials) (auth.Principal, error)
}

// Outcome is the result of a successful login: the adopted principal and the
// role's default landing view.
type Outcome struct {
	Principal   auth.Principal     `json:"principal"`
	Destination nav.ViewDescriptor `json:"destination"`
}

// Controller orchestrates the login flow: local field validation, the
// credential check, session adoption and the post-login destination. It is
// the session store's only writer.
type Controller struct {
	store      *Store
	checker    CredentialChecker
	views      *nav.Registry
	validate   *validator.Validate
	translator ut.Translator

	inFlight int32
}

func NewController(store *Store, checker CredentialChecker, views *nav.Registry, validate *validator.Validate, translator ut.Translator) *Controller {
	return &Controller{
		store:      store,
		checker:    checker,
		views:      views,
		validate:   validate,
		translator: translator,
	}
}

// Submit runs one login attempt. Malformed input short-circuits before the
// credential check; on any rejection the store is left untouched. At most
// one attempt may be in flight at a time: concurrent submits are rejected
// with ErrLoginPending.
//
// Cancelling ctx before the attempt resolves discards the result: a login
// whose initiator has gone away never adopts into the store.
func (c *Controller) Submit(ctx context.Context, creds auth.Credentials) (Outcome, error) {
	if !atomic.CompareAndSwapInt32(&c.inFlight, 0, 1) {
		return Outcome{}, ErrLoginPending
	}
	defer atomic.StoreInt32(&c.inFlight, 0)

	// shape checks first: no round trip for malformed input
	if err := creds.Validate(c.validate, c.translator); err != nil {
		return Outcome{}, err
	}

	type result struct {
		principal auth.Principal
		err       error
	}
	resCh := make(chan result, 1)
	go func() {
		p, err := c.checker.Validate(ctx, creds)
		resCh <- result{p, err}
	}()

	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case res := <-resCh:
		if res.err != nil {
			return Outcome{}, res.err
		}
		// the initiator may have gone away while the check resolved
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		c.store.Adopt(res.principal)
		return Outcome{
			Principal:   res.principal,
			Destination: c.views.DefaultView(res.principal.Role),
		}, nil
	}
}

// Logout clears the session.
func (c *Controller) Logout() {
	c.store.Clear()
}
