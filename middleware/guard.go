package middleware

import (
	"context"
	"net/http"
	"strings"

	sanctum "github.com/nivora-app/sanctum"
)

type ticketContextKey struct{}

// TicketFromContext returns the claims injected by [RequireTicket].
func TicketFromContext(ctx context.Context) (*sanctum.TicketClaims, bool) {
	claims, ok := ctx.Value(ticketContextKey{}).(*sanctum.TicketClaims)
	return claims, ok
}

// RequireTicket returns middleware that rejects requests without a valid
// proxy ticket. Valid claims are injected into the request context.
func RequireTicket(engine *sanctum.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.VerifyTicket(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ticketContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
