package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// APIKeyPrincipal is the identity resolved from an API key: the user it
// represents and the role that user holds.
type APIKeyPrincipal struct {
	UserID string
	Role   domain.RestaurantRole
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	CORSAllowedOrigins []string
	RateLimitFormat    string
	APIKeys            map[string]APIKeyPrincipal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("API_KEYS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.RateLimitFormat = viper.GetString("RATE_LIMIT")
	if cfg.RateLimitFormat == "" {
		cfg.RateLimitFormat = "100-M"
	}

	apiKeys, err := parseAPIKeys(viper.GetString("API_KEYS"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_KEYS configuration: %w", err)
	}
	if len(apiKeys) == 0 {
		log.Println("Warning: API_KEYS environment variable not set. All authenticated endpoints will reject requests.")
	}
	cfg.APIKeys = apiKeys

	return cfg, nil
}

// parseAPIKeys parses the API_KEYS env value. The format is a comma separated
// list of key:userID:role triples, e.g.
//
//	"s3cret1:user-alice:ADMIN,s3cret2:user-bob:READONLY"
func parseAPIKeys(raw string) (map[string]APIKeyPrincipal, error) {
	keys := make(map[string]APIKeyPrincipal)
	if strings.TrimSpace(raw) == "" {
		return keys, nil
	}

	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parts := strings.Split(chunk, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("expected key:userID:role, got %q", chunk)
		}
		role := domain.RestaurantRole(strings.ToUpper(strings.TrimSpace(parts[2])))
		switch role {
		case domain.RoleAdmin, domain.RoleManager, domain.RoleReadOnly:
		default:
			return nil, fmt.Errorf("unknown role %q in %q", parts[2], chunk)
		}
		keys[parts[0]] = APIKeyPrincipal{
			UserID: strings.TrimSpace(parts[1]),
			Role:   role,
		}
	}
	return keys, nil
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
