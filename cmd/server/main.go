package main

import (
	"errors"
	"net/http"
	"time"

	"trip-tracker/internal/auth"
	"trip-tracker/internal/config"
	"trip-tracker/internal/handlers"
	"trip-tracker/internal/storage"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.CleanExpiredSessions(); err != nil {
		logger.Warnf("Failed to clean expired sessions: %v", err)
	}

	if err := bootstrapAdmin(db, cfg); err != nil {
		logger.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	h := handlers.NewHandlers(db, logger, cfg.TemplateDir, cfg.SecureCookie)
	router := setupRouter(h, cfg.StaticDir)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, staticDir string) *mux.Router {
	return handlers.NewRouter(h, staticDir)
}

// bootstrapAdmin creates the ADMIN_USER account on first start so a fresh
// deployment has a login without shelling into the box.
func bootstrapAdmin(db *storage.DB, cfg *config.Config) error {
	if cfg.AdminUser == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := db.GetUserByUsername(cfg.AdminUser)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = db.CreateUser(cfg.AdminUser, hash)
	return err
}
