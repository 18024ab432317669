package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/slateboard/slateboard/internal/asset"
	"github.com/slateboard/slateboard/internal/auth"
	"github.com/slateboard/slateboard/internal/config"
	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/export"
	mw "github.com/slateboard/slateboard/internal/middleware"
	"github.com/slateboard/slateboard/internal/project"
	"github.com/slateboard/slateboard/internal/session"
	"github.com/slateboard/slateboard/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		slog.Error("migrate schema", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	projectService := project.NewService(st)
	projectHandler := project.NewHandler(projectService)

	// The session manager loads and saves through the project service.
	// Background contexts: loads run on the request goroutine before
	// the session starts, saves run on session goroutines at shutdown
	// when the request context is long gone.
	manager := session.NewManager(
		func(projectID string) (document.Document, error) {
			return projectService.LoadDocument(context.Background(), projectID)
		},
		func(projectID string, doc document.Document) error {
			return projectService.SaveDocument(context.Background(), projectID, doc)
		},
	)

	assetHandler := asset.NewHandler(cfg.MaxUploadBytes)
	exportHandler := export.NewHandler(projectService)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset ingest (public, size-capped; payloads are embedded in the
	// document rather than stored server-side)
	r.HandleFunc("/assets/ingest", assetHandler.Ingest).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	api.HandleFunc("/projects/{projectId}", projectHandler.Get).Methods("GET")
	api.HandleFunc("/projects/{projectId}", projectHandler.Delete).Methods("DELETE")
	api.HandleFunc("/projects/{projectId}/snapshots/latest", projectHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/export/image", exportHandler.Image).Methods("POST")

	// WebSocket endpoint: one session per connection
	r.HandleFunc("/ws/project/{projectId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, manager, authService, projectService, cfg.Origins())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop sessions first so dirty documents get saved
		manager.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, manager *session.Manager, authSvc *auth.Service, projects *project.Service, origins []string) {
	projectID := mux.Vars(r)["projectId"]

	userID, err := authSvc.Authenticate(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := projects.CheckAccess(r.Context(), projectID, userID); err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	sess, err := manager.Open(context.Background(), projectID)
	if err != nil {
		slog.Error("open session", "project", projectID, "error", err)
		http.Error(w, "could not open project", http.StatusInternalServerError)
		return
	}
	defer manager.Close(sess)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(origins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := session.NewClient(sess, conn, uuid.New().String())
	sess.Attach(client)
	sess.SyncNow()

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns converts configured origins (full URLs) into the
// host patterns websocket.Accept matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		patterns = append(patterns, o)
	}
	return patterns
}
