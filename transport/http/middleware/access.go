package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"studyhall/config"
	"studyhall/infras/otel"
	"studyhall/shared/constant"
	"studyhall/shared/failure"
	"studyhall/transport/http/response"
)

// Access guards the merchant-side write endpoints with a shared API key.
type Access interface {
	GuardWrites(next http.Handler) http.Handler
}

type accessImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAccess(otel otel.Otel, cfg *config.Config) Access {
	return &accessImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// GuardWrites lets reads through. Writes need X-API-Key when a key is configured
// and are attributed to X-Actor, falling back to the system actor.
func (m *accessImpl) GuardWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if isRead(request.Method) {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		if m.cfg.App.APIKey != constant.Empty {
			apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
				err := failure.ForbiddenError

				scope.TraceError(err)
				scope.End()

				response.WithError(writer, err)

				return
			}
		}

		actor := request.Header.Get(constant.RequestHeaderActor)
		if actor == constant.Empty {
			actor = constant.ContextSystem
		}

		scope.SetAttribute("http.actor", actor)
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, actor)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func isRead(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
