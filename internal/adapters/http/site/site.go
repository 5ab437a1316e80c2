// Package site serves the embedded browser dashboard.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register mounts the dashboard at the root of r. API routes registered on
// the same router take precedence.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Handle("/*", http.FileServer(FS()))
}
