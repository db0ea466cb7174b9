package config

import (
	"log/slog"
	"os"

	"github.com/corray333/order-bridge/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Credentials is the API key/password pair shared with the partner. It is
// loaded once at startup and passed by value into the components that need
// it; changing the configuration takes effect on restart only.
type Credentials struct {
	APIKey  string
	APIPass string
}

// IsComplete reports whether both parts of the pair are set.
func (c Credentials) IsComplete() bool {
	return c.APIKey != "" && c.APIPass != ""
}

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/order-bridge")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	SetupLogger()
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}

// LoadCredentials reads the partner API credential pair from the
// environment. Either part may be empty; callers decide whether an
// incomplete pair is fatal.
func LoadCredentials() Credentials {
	return Credentials{
		APIKey:  os.Getenv("PARTNER_API_KEY"),
		APIPass: os.Getenv("PARTNER_API_PASS"),
	}
}
