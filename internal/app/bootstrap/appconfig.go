// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Google sign-in
	GoogleClientID string // OAuth2 client id the ID tokens must be issued for

	// Quiz generation
	GeminiAPIKey string // API key for the hosted Gemini model
	GeminiModel  string // Model name (e.g., gemini-2.5-flash)

	// Admin bootstrap
	AdminEmail string // Email promoted to admin on startup

	// Static assets
	StaticDir string // Directory served under /static
}
