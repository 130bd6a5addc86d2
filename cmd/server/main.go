package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pollfund/backend/internal/handler"
	"github.com/pollfund/backend/internal/logging"
	"github.com/pollfund/backend/internal/registry"
	"github.com/pollfund/backend/internal/repository"
	"github.com/pollfund/backend/internal/service"
	"github.com/pollfund/backend/internal/treasury"
	"github.com/pollfund/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:4321"
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	ctx := context.Background()

	var (
		db          repository.DB
		projectRepo repository.ProjectRepository
		itemRepo    repository.ItemRepository
		eventRepo   repository.EventRepository
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := repository.NewPool(ctx, dbURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		db = pool
		projectRepo = repository.NewPgProjectRepository(pool)
		itemRepo = repository.NewPgItemRepository(pool)
		eventRepo = repository.NewPgEventRepository(pool)
		slog.Info("using postgres store")
	} else {
		memProjects := repository.NewMemProjectRepository()
		db = memProjects
		projectRepo = memProjects
		itemRepo = repository.NewMemItemRepository()
		eventRepo = repository.NewMemEventRepository()
		slog.Info("DATABASE_URL not set, using in-memory store")
	}

	maxProjectID, err := projectRepo.MaxID(ctx)
	if err != nil {
		logging.Fatal("failed to read max project id", "error", err)
	}
	maxItemID, err := itemRepo.MaxID(ctx)
	if err != nil {
		logging.Fatal("failed to read max item id", "error", err)
	}
	reg := registry.New(maxProjectID, maxItemID)

	bank := treasury.NewLedger()
	projectService := service.NewProjectService(projectRepo, reg, eventRepo)
	itemService := service.NewItemService(itemRepo, projectRepo, reg, bank, eventRepo)

	h := handler.New(db, frontendURL)
	projectHandler := handler.NewProjectHandler(projectService)
	itemHandler := handler.NewItemHandler(itemService)
	eventHandler := handler.NewEventHandler(eventRepo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/events", eventHandler.List)

	// 読み取り系（認証不要）
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("GET /api/items/{id}", itemHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/responders", itemHandler.Responders)
	mux.HandleFunc("GET /api/items/{id}/responded", itemHandler.HasResponded)
	mux.HandleFunc("GET /api/items/{id}/potential-reward", itemHandler.PotentialReward)

	// 状態変更系（呼び出し元アドレス必須）
	wrapCaller := func(next http.HandlerFunc) http.Handler {
		return auth.RequireCaller(next)
	}
	mux.Handle("POST /api/projects", wrapCaller(projectHandler.Create))
	mux.Handle("PUT /api/projects/{id}", wrapCaller(projectHandler.Update))
	mux.Handle("POST /api/projects/{id}/deactivate", wrapCaller(projectHandler.Deactivate))
	mux.Handle("GET /api/me/projects", wrapCaller(projectHandler.MyProjects))

	mux.Handle("POST /api/items", wrapCaller(itemHandler.Create))
	mux.Handle("POST /api/items/{id}/fund", wrapCaller(itemHandler.Fund))
	mux.Handle("POST /api/items/{id}/respond", wrapCaller(itemHandler.Respond))
	mux.Handle("POST /api/items/{id}/end", wrapCaller(itemHandler.End))
	mux.Handle("POST /api/items/{id}/cancel", wrapCaller(itemHandler.Cancel))
	mux.Handle("POST /api/items/{id}/claim", wrapCaller(itemHandler.Claim))
	mux.Handle("GET /api/me/items", wrapCaller(itemHandler.MyItems))

	server := &http.Server{
		Addr:         addr,
		Handler:      h.CORS(handler.RequestLogger(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
