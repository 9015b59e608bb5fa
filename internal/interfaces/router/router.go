package router

import (
	"errors"

	aisvc "speedlist-backend/internal/application/ai"
	adsvc "speedlist-backend/internal/application/ads"
	healthsvc "speedlist-backend/internal/application/health"
	repsvc "speedlist-backend/internal/application/reports"
	usersvc "speedlist-backend/internal/application/users"
	"speedlist-backend/internal/config"
	"speedlist-backend/internal/images"
	"speedlist-backend/internal/infrastructure/database"
	adminhandler "speedlist-backend/internal/interfaces/handlers/admin"
	adshandler "speedlist-backend/internal/interfaces/handlers/ads"
	aihandler "speedlist-backend/internal/interfaces/handlers/ai"
	cathandler "speedlist-backend/internal/interfaces/handlers/categories"
	healthhandler "speedlist-backend/internal/interfaces/handlers/health"
	usershandler "speedlist-backend/internal/interfaces/handlers/users"
	"speedlist-backend/internal/llm"
	"speedlist-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and routes. DB and
// Redis are optional at startup: without a DATABASE_URL only the health
// surface is mounted.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		// Image batches arrive base64-encoded in the JSON body.
		BodyLimit: 32 * 1024 * 1024,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Language())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// A typed-nil pinger inside the interface would defeat the nil check
	// in CollectHealth, so only wrap an actual connection.
	var dbPinger healthsvc.DBPinger
	if db != nil {
		dbPinger = &gormDBPinger{db: db}
	}
	healthHandlers := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             dbPinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	catHandlers := &cathandler.Handlers{}
	app.Get("/api/categories", catHandlers.List)

	if db != nil {
		adsService := &adsvc.Service{DB: db}
		reportsService := &repsvc.Service{DB: db}
		usersService := &usersvc.Service{DB: db}

		var completer llm.ChatCompleter
		if cfg.OpenAIAPIKey != "" {
			client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
			if err != nil {
				return nil, nil, nil, err
			}
			completer = client
		} else {
			log.Warn().Msg("OPENAI_API_KEY not set; AI endpoints will fail")
		}
		aiService := &aisvc.Service{
			LLM:        completer,
			Ads:        adsService,
			Compressor: images.NewCompressor(),
			Rdb:        rdb,
		}

		aiHandlers := &aihandler.Handlers{Service: aiService}
		aiGroup := app.Group("/api/ai")
		aiGroup.Post("/create-ad", aiHandlers.CreateAd)
		aiGroup.Post("/search-ads", aiHandlers.SearchAds)

		adsHandlers := &adshandler.Handlers{Service: adsService, Reports: reportsService}
		adsGroup := app.Group("/api/ads")
		adsGroup.Get("/", adsHandlers.List)
		adsGroup.Get("/:id", adsHandlers.Get)
		adsGroup.Patch("/:id", adsHandlers.Patch)
		adsGroup.Delete("/:id", adsHandlers.Delete)
		adsGroup.Post("/:id/report", adsHandlers.Report)

		usersHandlers := &usershandler.Handlers{Service: usersService}
		usersGroup := app.Group("/api/users")
		usersGroup.Post("/register", usersHandlers.Register)
		usersGroup.Post("/login", usersHandlers.Login)
		usersGroup.Post("/verify", usersHandlers.Verify)

		if cfg.AdminUser != "" && cfg.AdminPassword != "" {
			adminHandlers := &adminhandler.Handlers{Ads: adsService, Reports: reportsService}
			adminGroup := app.Group("/api/admin", basicauth.New(basicauth.Config{
				Users: map[string]string{cfg.AdminUser: cfg.AdminPassword},
			}))
			adminGroup.Get("/ads/pending", adminHandlers.ListPending)
			adminGroup.Post("/ads/:id/approve", adminHandlers.Approve)
			adminGroup.Post("/ads/:id/reject", adminHandlers.Reject)
			adminGroup.Patch("/ads/:id", adsHandlers.Patch)
			adminGroup.Delete("/ads/:id", adminHandlers.DeleteAd)
			adminGroup.Get("/reports", adminHandlers.ListReports)
			adminGroup.Post("/reports/:id/resolve", adminHandlers.ResolveReport)
		}
	}

	return app, db, rdb, nil
}
