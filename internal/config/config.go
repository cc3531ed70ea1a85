package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The signing secret is the only value whose
// absence is fatal; everything else carries a development default.
type Config struct {
	Env        string        // application environment ("dev", "prod")
	Port       string        // HTTP port to listen on
	MongoURI   string        // MongoDB connection string
	MongoDB    string        // MongoDB database name
	JWTSecret  string        // secret used to sign access tokens
	JWTTTL     time.Duration // access token time-to-live
	BcryptCost int           // bcrypt cost for password hashing
}

// Load reads configuration from the environment.  A missing JWT_SECRET
// terminates the process; tokens signed with a guessed default would be
// worthless.
func Load() Config {
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "5000"),
		MongoURI:   envStr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    envStr("MONGO_DB", "catalog"),
		JWTSecret:  must("JWT_SECRET"),
		JWTTTL:     envDur("JWT_TTL", 24*time.Hour),
		BcryptCost: envInt("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
