package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // godotenv loads a local .env file in development
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs. The JWT secret and the database coordinates are required:
// their absence is a fatal startup condition, never a per-request error.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxConns     int    // max open connections in the pool
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	VerifyTTLHours int    // email-verification token time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
	S3             S3Config
	GeoIPBaseURL   string // base URL of the IP geolocation API (empty disables lookups)
}

// S3Config describes the S3-compatible object store holding uploaded
// images. Endpoint may point at MinIO; an empty endpoint falls back to
// the AWS default resolution.
type S3Config struct {
	Region    string // bucket region
	Endpoint  string // custom base endpoint (MinIO), optional
	Bucket    string // bucket name for citizen photos
	AccessKey string // static access key
	SecretKey string // static secret key
	PublicURL string // public base URL objects are served from
}

// Load reads configuration values from environment variables and returns a
// Config. A .env file is honored when present so local development does
// not need exported variables. Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // best effort; real environments set variables directly

	return Config{
		Env:            must("APP_ENV"),                    // environment (dev/test/prod)
		Port:           must("APP_PORT"),                   // port to bind the HTTP server
		DBUser:         must("DB_USER"),                    // database user
		DBPass:         os.Getenv("DB_PASS"),               // database password (empty allowed)
		DBHost:         must("DB_HOST"),                    // database host
		DBPort:         must("DB_PORT"),                    // database port
		DBName:         must("DB_NAME"),                    // database name
		DBMaxConns:     envInt("DB_MAX_CONNS", 25),         // pool size / backpressure limit
		JWTSecret:      must("JWT_SECRET"),                 // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),    // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),  // TTL for refresh tokens in days
		VerifyTTLHours: envInt("VERIFY_TOKEN_TTL_HOURS", 24), // TTL for verification tokens
		BcryptCost:     mustInt("BCRYPT_COST"),             // bcrypt cost factor
		S3: S3Config{
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
		GeoIPBaseURL: os.Getenv("GEOIP_BASE_URL"), // e.g. http://ip-api.com/json
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
