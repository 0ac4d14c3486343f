package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"studyhall/config"
	"studyhall/infras/otel/mocks"
	"studyhall/shared/constant"
	"studyhall/transport/http/middleware"
)

func TestAccess_GuardWrites(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		method     string
		headers    map[string]string
		wantStatus int
		wantActor  string
	}{
		{
			name:       "reads pass without a key",
			apiKey:     "secret",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:       "write without a key is forbidden",
			apiKey:     "secret",
			method:     http.MethodPost,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "write with a wrong key is forbidden",
			apiKey:     "secret",
			method:     http.MethodPut,
			headers:    map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "write with the key is attributed to the actor",
			apiKey: "secret",
			method: http.MethodDelete,
			headers: map[string]string{
				constant.RequestHeaderAPIKey: "secret",
				constant.RequestHeaderActor:  "merchant-7",
			},
			wantStatus: http.StatusOK,
			wantActor:  "merchant-7",
		},
		{
			name:       "no configured key falls back to the system actor",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
			wantActor:  constant.ContextSystem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.APIKey = tt.apiKey

			var actor string

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actor, _ = r.Context().Value(constant.ContextKeyUserID).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/v1/bookings", nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			middleware.NewAccess(mocks.NewOtel(), cfg).GuardWrites(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantActor, actor)
		})
	}
}
