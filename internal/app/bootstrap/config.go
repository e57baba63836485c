// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// devJWTSecret is the default signing secret. It is accepted only outside
// production; ValidateConfig rejects it when the environment is "prod".
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for the service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: CAMPDIR_MONGO_URI, CAMPDIR_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "campdir", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// JWT configuration
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "JWT signing secret (must be strong in production)"},
	{Name: "jwt_expiry", Default: "720h", Desc: "JWT token lifetime (e.g., 720h for 30 days)"},

	// Geocoding
	{Name: "geocoder_api_key", Default: "", Desc: "MapQuest API key for radius search geocoding"},

	// File uploads
	{Name: "file_upload_path", Default: "./public/uploads", Desc: "Directory bootcamp photos are written to"},
	{Name: "max_file_upload", Default: 1000000, Desc: "Max photo upload size in bytes"},

	// CORS
	{Name: "cors_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins"},

	// Rate limiting
	{Name: "rate_limit", Default: 100, Desc: "Max API requests per client per window"},
	{Name: "rate_window", Default: "10m", Desc: "Rate limit window duration"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built. WAFFLE's
// config.LoadWithAppConfig merges .env files, config files, environment
// variables (WAFFLE_* for core, CAMPDIR_* for app), and command-line flags,
// with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPDIR", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTExpiry: appValues.Duration("jwt_expiry", 30*24*time.Hour),

		GeocoderAPIKey: appValues.String("geocoder_api_key"),

		FileUploadPath: appValues.String("file_upload_path"),
		MaxFileUpload:  int64(appValues.Int("max_file_upload")),

		CORSOrigins: splitOrigins(appValues.String("cors_origins")),

		RateLimit:  appValues.Int("rate_limit"),
		RateWindow: appValues.Duration("rate_window", 10*time.Minute),
	}

	return coreCfg, appCfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked up front to catch configuration errors before
// attempting to connect, and the development JWT secret is rejected in
// production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be set in production")
	}
	if appCfg.MaxFileUpload <= 0 {
		return fmt.Errorf("max_file_upload must be positive")
	}
	if appCfg.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}

	return nil
}
