package api

import (
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/shivamgupta1319/EasyShare/docs"

	"github.com/shivamgupta1319/EasyShare/internal/api/handlers"
	"github.com/shivamgupta1319/EasyShare/internal/api/middleware"
	"github.com/shivamgupta1319/EasyShare/internal/config"
	"github.com/rs/cors"
)

// Deps carries everything the router mounts.
type Deps struct {
	Handler *handlers.Handler
	// Uploads serves locally stored file bytes; nil when uploads live in
	// bucket storage.
	Uploads http.Handler
	Config  config.Config
}

// SetupRouter wires public and protected routes behind CORS and request
// logging.
func SetupRouter(deps Deps) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(deps.Config.CorsConfig)
	h := deps.Handler

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	if deps.Uploads != nil {
		mainMux.Handle("/uploads/", deps.Uploads)
	}

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-up", h.RegisterUser)
	authMux.HandleFunc("POST /login", h.LoginUser)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("GET /files", h.ListFiles)
	protectedMux.HandleFunc("GET /files/shared", h.ListShared)
	protectedMux.HandleFunc("POST /files", h.CreateFile)
	protectedMux.HandleFunc("GET /files/{id}", h.GetFile)
	protectedMux.HandleFunc("PUT /files/{id}", h.UpdateFile)
	protectedMux.HandleFunc("DELETE /files/{id}", h.DeleteFile)
	protectedMux.HandleFunc("POST /files/{id}/connect", h.Connect)
	protectedMux.HandleFunc("POST /files/{id}/share", h.ShareFile)
	protectedMux.HandleFunc("POST /files/{id}/download", h.ToggleDownload)

	protectedMux.HandleFunc("POST /auth/logout", h.Logout)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.Auth(deps.Config.JWTSecret)(protectedMux),
		),
	)

	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
