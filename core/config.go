package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		Build        string
		RollbarToken string
		DatabaseURL  string
		Server       ServerConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
		LoginTimeout       time.Duration
	}
)

// NewConfig loads the app configuration from the environment.
// A `config/.env.<env>` file is loaded first if it exists; explicit
// environment variables (prefixed with the upper-cased env name) win.
func NewConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Shule")
	conf.SetDefault("secretKey", "f$j2y(9#vmx_0q&wz8+ker@57nh!u4cp-d6t%sgl1aob3i)e")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("databaseUrl", "")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("loginTimeout", 10*time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch strings.ToUpper(env) {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		}
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		DatabaseURL:  conf.GetString("databaseUrl"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Addr:               conf.GetString("serverAddr"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
			LoginTimeout:       conf.GetDuration("loginTimeout"),
		},
	}, nil
}
