package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/rohits-web03/sharevault/docs"
	"github.com/rohits-web03/sharevault/internal/api/handlers"
	"github.com/rohits-web03/sharevault/internal/api/middleware"
)

type RouterDeps struct {
	Files  *handlers.FileHandler
	Auth   *handlers.AuthHandler
	Tokens middleware.TokenVerifier
	Cors   cors.Options
	Logger *log.Entry
}

func SetupRouter(deps RouterDeps) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(deps.Cors)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mainMux.Handle("GET /metrics", promhttp.Handler())
	mainMux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /auth/register", deps.Auth.RegisterUser)
	mainMux.HandleFunc("POST /auth/login", deps.Auth.LoginUser)
	mainMux.HandleFunc("GET /auth/google/login", deps.Auth.HandleGoogleLogin)
	mainMux.HandleFunc("GET /auth/google/callback", deps.Auth.HandleGoogleCallback)

	// ---------- PROTECTED ROUTES ----------
	fileMux := http.NewServeMux()
	fileMux.Handle("POST /files/upload", middleware.Route(http.HandlerFunc(deps.Files.UploadFile)))
	fileMux.Handle("GET /files", middleware.Route(http.HandlerFunc(deps.Files.ListFiles)))
	fileMux.Handle("GET /files/{fileId}", middleware.Route(http.HandlerFunc(deps.Files.GetFile)))
	fileMux.Handle("GET /files/download/{fileId}", middleware.Route(http.HandlerFunc(deps.Files.DownloadFile)))
	fileMux.Handle("DELETE /files/{fileId}", middleware.Route(http.HandlerFunc(deps.Files.DeleteFile)))
	fileMux.Handle("PATCH /files/{fileId}/access", middleware.Route(http.HandlerFunc(deps.Files.UpdateAccess)))

	protected := middleware.AuthMiddleware(deps.Tokens)(fileMux)
	mainMux.Handle("/files", protected)
	mainMux.Handle("/files/", protected)

	deps.Logger.Info("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(deps.Logger)(handler)
	return handler
}
