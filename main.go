package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/admin"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/chat"
	"github.com/CityPulse/CityPulse-Backend/internal/config"
	"github.com/CityPulse/CityPulse-Backend/internal/db"
	"github.com/CityPulse/CityPulse-Backend/internal/donations"
	"github.com/CityPulse/CityPulse-Backend/internal/events"
	"github.com/CityPulse/CityPulse-Backend/internal/issues"
	"github.com/CityPulse/CityPulse-Backend/internal/leaderboard"
	"github.com/CityPulse/CityPulse-Backend/internal/middleware"
	"github.com/CityPulse/CityPulse-Backend/internal/orgs"
	"github.com/CityPulse/CityPulse-Backend/internal/ratelimit"
	"github.com/CityPulse/CityPulse-Backend/internal/uploads"
	"github.com/CityPulse/CityPulse-Backend/internal/users"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const eventsTopic = "citypulse.events"

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db.Connect(cfg.DatabaseURL)
	auth.Init()
	orgs.Init()
	issues.Init()
	donations.Init()

	ctx := context.Background()

	codec, err := auth.NewCodec(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies)
	if err != nil {
		log.Fatal("Failed to build session codec: ", err)
	}
	userStore := auth.NewGormUserStore(db.DB)
	orgStore := orgs.NewGormStore(db.DB)

	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	if cfg.RedisAddr != "" {
		client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client, "citypulse:issues", cfg.IssueDailyLimit, 24*time.Hour)
		log.Printf("[ratelimit] issue reports limited to %d per day", cfg.IssueDailyLimit)
	}

	publisher, err := events.New(cfg.KafkaBrokers, eventsTopic)
	if err != nil {
		log.Fatal(err)
	}
	if c, ok := publisher.(io.Closer); ok {
		defer c.Close()
	}

	chatHandler := &chat.Handler{
		Limiter:    chat.NewSubjectLimiter(cfg.ChatRatePerMin, cfg.ChatRateBurst),
		HistoryCap: cfg.ChatHistoryCap,
	}
	if gemini := chat.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel, cfg.ChatTimeout); gemini != nil {
		chatHandler.Completer = gemini
	} else {
		log.Println("[chat] GEMINI_API_KEY not set, chat relay disabled")
	}

	uploadHandler := &uploads.Handler{
		Bucket:     cfg.UploadBucket,
		PublicBase: cfg.UploadPublicBase,
		TTL:        cfg.UploadTTL,
	}
	if cfg.UploadBucket != "" {
		presigner, err := uploads.NewPresigner(ctx, cfg.UploadRegion)
		if err != nil {
			log.Fatal(err)
		}
		uploadHandler.Presigner = presigner
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.GateMiddleware(auth.NewResolver(userStore, codec)))

	r.Mount("/api/auth", auth.SetupRoutes(&auth.Handler{
		Users:    userStore,
		Codec:    codec,
		Verifier: auth.NewAssertionVerifier(cfg.IdPAssertionSecret),
	}))
	r.Mount("/api/users", users.SetupRoutes(&users.Handler{Store: userStore}))
	r.Mount("/api/orgs", orgs.SetupRoutes(&orgs.Handler{Store: orgStore}))
	r.Mount("/api/issues", issues.SetupRoutes(&issues.Handler{
		Store:   issues.NewGormStore(db.DB),
		Orgs:    orgStore,
		Limiter: limiter,
		Events:  publisher,
	}))
	r.Mount("/api/food-donations", donations.SetupRoutes(&donations.Handler{
		Store:  donations.NewGormStore(db.DB),
		Orgs:   orgStore,
		Events: publisher,
	}))
	r.Mount("/api/leaderboard", leaderboard.SetupRoutes(&leaderboard.Handler{Source: leaderboard.NewGormSource(db.DB)}))
	r.Mount("/api/admin", admin.SetupRoutes(&admin.Handler{Source: &admin.GormStats{DB: db.DB}}))
	r.Mount("/api/chat", chat.SetupRoutes(chatHandler))
	r.Mount("/api/uploads", uploads.SetupRoutes(uploadHandler))

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		r.Get("/*", RootHandler)
	}

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server listening on %s...", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
