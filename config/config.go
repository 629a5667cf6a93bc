package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// AppConfig holds every runtime setting, loaded from the environment.
type AppConfig struct {
	Port string `envconfig:"PORT" default:"5000"`

	// StoreBackend selects the persistence variant: "sql" or "mongo".
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sql"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"root"`
	DBName     string `envconfig:"DB_NAME" default:"feedback"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"feedback"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin@sdckl"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"sdckladmin123@"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// LoadConfig populates the struct from the environment.
func (cfg *AppConfig) LoadConfig() {
	if err := envconfig.Process("", cfg); err != nil {
		log.WithError(err).Error("load env err")
	}
}

// CORSOriginList splits the configured origins.
func (cfg *AppConfig) CORSOriginList() []string {
	parts := strings.Split(cfg.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
