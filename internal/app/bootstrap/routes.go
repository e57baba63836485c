// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/campdir/internal/app/features/authfeature"
	bootcampsfeature "github.com/dalemusser/campdir/internal/app/features/bootcamps"
	coursesfeature "github.com/dalemusser/campdir/internal/app/features/courses"
	healthfeature "github.com/dalemusser/campdir/internal/app/features/health"
	reviewsfeature "github.com/dalemusser/campdir/internal/app/features/reviews"
	usersfeature "github.com/dalemusser/campdir/internal/app/features/users"
	userstore "github.com/dalemusser/campdir/internal/app/store/users"
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/app/system/geocode"
	"github.com/dalemusser/campdir/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The JWT token manager is created here
// and its LoadUser middleware is applied globally so every handler can reach
// the current user via auth.CurrentUser(r). The feature routers are all
// mounted under /api/v1, with the course and review routers additionally
// mounted in nested form under /bootcamps/{bootcampID}.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tm, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and deleted
	// accounts take effect immediately.
	tm.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	photoStore, err := storage.NewLocal(storage.LocalConfig{BasePath: appCfg.FileUploadPath})
	if err != nil {
		logger.Error("photo storage init failed", zap.Error(err))
		return nil, err
	}

	geocoder := geocode.New(appCfg.GeocoderAPIKey)

	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: appCfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(ratelimit.Middleware(ratelimit.New(appCfg.RateLimit, appCfg.RateWindow), logger))
	r.Use(tm.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	bootcampsHandler := bootcampsfeature.NewHandler(deps.MongoDatabase, geocoder, photoStore, appCfg.MaxFileUpload, logger)
	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, logger)
	reviewsHandler := reviewsfeature.NewHandler(deps.MongoDatabase, logger)
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	authHandler := authfeature.NewHandler(deps.MongoDatabase, tm, logger)

	r.Route("/api/v1", func(api chi.Router) {
		br := bootcampsfeature.Routes(bootcampsHandler)
		br.Mount("/{bootcampID}/courses", coursesfeature.NestedRoutes(coursesHandler))
		br.Mount("/{bootcampID}/reviews", reviewsfeature.NestedRoutes(reviewsHandler))
		api.Mount("/bootcamps", br)

		api.Mount("/courses", coursesfeature.Routes(coursesHandler))
		api.Mount("/reviews", reviewsfeature.Routes(reviewsHandler))

		ar := authfeature.Routes(authHandler)
		ar.Mount("/users", usersfeature.Routes(usersHandler))
		api.Mount("/auth", ar)
	})

	return r, nil
}
