package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/property-listing/application/auth"
	"github.com/muhammadheryan/property-listing/constant"
	utilsContext "github.com/muhammadheryan/property-listing/utils/context"
	"github.com/muhammadheryan/property-listing/utils/errors"
)

// AuthMiddleware resolves the bearer token into the calling user and stores its id in
// the request context. It is mounted only on the protected subrouter.
func AuthMiddleware(authApp auth.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			user, err := authApp.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, authError(err))
				return
			}

			ctx := utilsContext.WithUserID(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authError keeps token and server errors as they are and turns every other resolve
// failure into a 401.
func authError(err error) error {
	switch {
	case errors.Is(err, constant.ErrInternal),
		errors.Is(err, constant.ErrInvalidToken),
		errors.Is(err, constant.ErrTokenExpired):
		return err
	default:
		return errors.SetCustomError(constant.ErrInvalidToken)
	}
}
