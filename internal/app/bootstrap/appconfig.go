// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging
// level and format, request body limits). AppConfig is everything specific
// to this application: the MongoDB connection, JWT settings, the geocoder
// key, and upload limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT configuration
	JWTSecret string        // HMAC signing secret for bearer tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime

	// Geocoding
	GeocoderAPIKey string // MapQuest API key for the radius search geocoder

	// File uploads
	FileUploadPath string // Directory bootcamp photos are written to
	MaxFileUpload  int64  // Max photo size in bytes

	// CORS
	CORSOrigins []string // Allowed origins ("*" for any)

	// API rate limiting
	RateLimit  int           // Max requests per client per window
	RateWindow time.Duration // Window duration
}
