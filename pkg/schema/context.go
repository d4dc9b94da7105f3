package schema

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/tasklistio/tasklist/pkg/resolver"
)

type requestContextKey struct{}

// WithRequestContext attaches the per-request resolver context so field
// resolvers can reach the caller's identity.
func WithRequestContext(ctx context.Context, rc *resolver.RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// requestContext returns the attached per-request context, or a fresh
// anonymous one when the transport did not attach any.
func (b *builder) requestContext(p graphql.ResolveParams) *resolver.RequestContext {
	if rc, ok := p.Context.Value(requestContextKey{}).(*resolver.RequestContext); ok {
		return rc
	}
	return b.resolvers.NewRequestContext("")
}
