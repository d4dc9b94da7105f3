// Package resolver implements the domain resolution and authorization
// layer: identity from bearer tokens, the authentication gate on
// mutations, the CRUD operations on users, task lists and to-dos, and the
// field stitching that assembles the nested object graph.
package resolver

import (
	"errors"

	"github.com/tasklistio/tasklist/pkg/auth"
	"github.com/tasklistio/tasklist/pkg/logging"
	"github.com/tasklistio/tasklist/pkg/store"
)

var (
	// ErrUnauthenticated is returned when a mutation is attempted
	// without a resolved identity. No store write happens after it.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredential is returned on sign-in failure. Unknown email
	// and wrong password produce this same error so responses do not
	// reveal which one it was.
	ErrInvalidCredential = errors.New("invalid email or password")
)

// Resolver holds the collaborators every operation needs.
type Resolver struct {
	store store.Store
	auth  *auth.Service
	log   logging.Logger
}

// New creates a resolver. A nil logger disables logging.
func New(st store.Store, authSvc *auth.Service, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{store: st, auth: authSvc, log: log}
}
