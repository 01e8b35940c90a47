package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredSettings []string
	RequiredSecrets  []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			RequiredSettings: []string{"SERVER_PORT", "DB_DRIVER", "MENU_SOURCE"},
			RequiredSecrets:  []string{"jwt_secret"},
		},
		Test: {
			RequiredSettings: []string{"SERVER_PORT", "DB_DRIVER", "MENU_SOURCE"},
			RequiredSecrets:  []string{},
		},
		CI: {
			RequiredSettings: []string{"SERVER_PORT", "DB_DRIVER", "MENU_SOURCE"},
			RequiredSecrets:  []string{"jwt_secret"},
		},
		Production: {
			RequiredSettings: []string{"SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_NAME", "REDIS_URL", "MENU_SOURCE", "S3_BUCKET_NAME"},
			RequiredSecrets:  []string{"db_password", "jwt_secret"},
		},
	}
)

func settingValue(cfg *Config, name string) string {
	switch name {
	case "SERVER_PORT":
		return cfg.ServerPort
	case "DB_DRIVER":
		return cfg.DBDriver
	case "DB_HOST":
		return cfg.DBHost
	case "DB_NAME":
		return cfg.DBName
	case "REDIS_URL":
		return cfg.RedisURL
	case "MENU_SOURCE":
		return cfg.MenuSource
	case "S3_BUCKET_NAME":
		return cfg.S3Bucket
	}
	return ""
}

func secretValue(cfg *Config, name string) string {
	switch name {
	case "db_password":
		return cfg.DBPassword
	case "jwt_secret":
		return cfg.JWTSecret
	case "redis_password":
		return cfg.RedisPassword
	case "gemini_api_key":
		return cfg.GeminiAPIKey
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the
// current environment and reports every problem at once
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var problems []ValidationError

	for _, name := range reqs.RequiredSettings {
		if settingValue(cfg, name) == "" {
			problems = append(problems, ValidationError{Field: name, Message: "required setting is not set"})
		}
	}

	for _, name := range reqs.RequiredSecrets {
		if secretValue(cfg, name) == "" {
			msg := "required secret is not set"
			if env == CI {
				msg = "required secret is not set (use TEST_" + strings.ToUpper(name) + ")"
			}
			problems = append(problems, ValidationError{Field: name, Message: msg})
		}
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.MenuSource {
	case MenuSourceMassPath, MenuSourceFoodPro:
	default:
		problems = append(problems, ValidationError{Field: "MENU_SOURCE", Message: fmt.Sprintf("unsupported menu source %q", cfg.MenuSource)})
	}

	if len(cfg.Halls) == 0 {
		problems = append(problems, ValidationError{Field: "DINING_HALLS", Message: "at least one dining hall is required"})
	}
	if cfg.MenuCacheTTL < 0 {
		problems = append(problems, ValidationError{Field: "MENU_CACHE_TTL", Message: "must not be negative"})
	}

	if len(problems) > 0 {
		lines := make([]string, len(problems))
		for i, p := range problems {
			lines[i] = p.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
