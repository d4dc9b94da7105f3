package resolver

import (
	"context"
	"sync"

	"github.com/tasklistio/tasklist/pkg/model"
)

// RequestContext carries the per-request state: the raw bearer token (if
// any) and the memoized identity derived from it. One instance is built
// per inbound request and shared by every resolver invocation within it.
type RequestContext struct {
	resolver *Resolver
	rawToken string

	once sync.Once
	user *model.User
}

// NewRequestContext builds the per-request context. rawToken may be empty;
// an anonymous context is a normal state, not an error.
func (r *Resolver) NewRequestContext(rawToken string) *RequestContext {
	return &RequestContext{resolver: r, rawToken: rawToken}
}

// CurrentUser resolves the caller's identity. A missing, malformed or
// expired token, or a token whose subject no longer exists, all resolve to
// nil. The underlying store lookup runs at most once per request.
func (rc *RequestContext) CurrentUser(ctx context.Context) *model.User {
	rc.once.Do(func() {
		if rc.rawToken == "" {
			return
		}

		userID, err := rc.resolver.auth.ValidateToken(rc.rawToken)
		if err != nil {
			rc.resolver.log.Debugf("token rejected: %v", err)
			return
		}

		user, err := rc.resolver.store.UserByID(ctx, userID)
		if err != nil {
			rc.resolver.log.Errorf("user lookup for token subject %s failed: %v", userID, err)
			return
		}
		if user == nil {
			rc.resolver.log.Debugf("token subject %s no longer exists", userID)
			return
		}
		rc.user = user
	})
	return rc.user
}

// requireUser is the authentication gate applied as the first step of
// every mutation.
func (rc *RequestContext) requireUser(ctx context.Context) (*model.User, error) {
	if user := rc.CurrentUser(ctx); user != nil {
		return user, nil
	}
	return nil, ErrUnauthenticated
}
