package web

import (
	"context"
	"net/http"

	"github.com/qualifab/fieldentry/internal/core"
)

// withRequestMetadata adds the client IP and User-Agent to the context so
// the audit log can record who performed an action.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, r.RemoteAddr)
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}
