package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	adapthttp "weighbattle/internal/adapter/http"
	"weighbattle/internal/adapter/postgres"
	"weighbattle/internal/app"
	"weighbattle/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	sessionRepo := postgres.NewSessionRepo(db)

	authSvc := app.NewAuthService(db, sessionRepo)
	weightSvc := app.NewWeightService(db)
	goalSvc := app.NewGoalService(db, db)
	battleSvc := app.NewBattleService(db, db)
	inviteSvc := app.NewInviteService(db, db, cfg.BaseURL)
	statsSvc := app.NewStatsService(db)

	oidcCfg, err := adapthttp.NewOIDC(context.Background(), cfg.OIDC)
	if err != nil {
		log.Fatalf("oidc setup: %v", err)
	}

	sweeper := app.NewSweeper(battleSvc, sessionRepo, db, cfg.SweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	h := adapthttp.New(authSvc, weightSvc, goalSvc, battleSvc, inviteSvc, statsSvc, oidcCfg).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
