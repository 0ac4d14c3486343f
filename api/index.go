package handler

import (
	"net/http"
	"studyhall/config"
	"studyhall/di"
	"studyhall/shared/logger"
	"sync"
)

var (
	app  *di.App
	once sync.Once
)

// Handler serves the HTTP surface on serverless platforms. The booking change
// listener is not started here, so availability is refreshed on request only.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.Configure(cfg)

		app = di.InitializeApp()
	})

	r.RequestURI = r.URL.String()

	app.HTTP.ServeHTTP(w, r)
}
