// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"fuseball/internal/auth"
	"fuseball/internal/cache"
	"fuseball/internal/database"
	"fuseball/internal/handlers"
	"fuseball/internal/lobby"
	"fuseball/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := auth.Init(); err != nil {
		logger.Fatalf("auth init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if ok, err := database.Connect(ctx); err != nil {
		logger.Fatalf("database connect failed: %v", err)
	} else if ok {
		logger.Info("profile store connected")
		defer database.Close()
	} else {
		logger.Info("no DATABASE_URL set, running without durable profiles")
	}

	if ok, err := cache.Connect(ctx); err != nil {
		logger.Fatalf("redis connect failed: %v", err)
	} else if ok {
		logger.Info("leaderboard cache connected")
	} else {
		logger.Info("no REDIS_ADDR set, running without a leaderboard")
	}

	store := lobby.NewStore()
	store.OnFinish = makeMatchSink(logger)

	scheduler := lobby.NewScheduler(store, logger)
	go scheduler.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)
	mux.Handle("/leaderboard", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.LeaderboardHandler,
	)))
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, store),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Running on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server exited: %v", err)
	}
}

// makeMatchSink persists match results: cumulative stats in postgres and the
// XP leaderboard in redis, whichever of the two is configured. Runs off the
// tick path, one goroutine per finished match.
func makeMatchSink(logger *logrus.Logger) func(lobby.MatchResult) {
	return func(res lobby.MatchResult) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var deltas []database.StatDelta
		for _, p := range res.Players {
			xp := 25 + p.Goals*20
			if p.Won {
				xp += 100
			}
			deltas = append(deltas, database.StatDelta{
				PlayerID: p.Identity.ID,
				Wins:     boolToInt(p.Won),
				Goals:    p.Goals,
				XP:       xp,
			})
			if cache.Enabled() {
				if err := cache.AddXP(ctx, p.Identity.ID, p.Identity.Name, xp); err != nil {
					logger.Warnf("leaderboard update failed for %d: %v", p.Identity.ID, err)
				}
			}
		}

		if database.Enabled() {
			if err := database.RecordMatchResult(ctx, deltas); err != nil {
				logger.Warnf("failed to persist match %s: %v", res.RoomID, err)
			}
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
