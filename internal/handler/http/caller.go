package http

import (
	"net/http"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
)

// requireCaller writes a 401 and returns false when the request carries no caller.
func requireCaller(w http.ResponseWriter, r *http.Request) (auth.Caller, bool) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return auth.Caller{}, false
	}
	return caller, true
}

func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
