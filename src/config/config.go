package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type AuthConfig struct {
	// JWTSecret signs access and refresh tokens. When AWSSecretID is set the
	// secret is fetched from AWS Secrets Manager instead.
	JWTSecret          string `mapstructure:"jwtSecret"`
	AWSSecretID        string `mapstructure:"awsSecretId"`
	AWSRegion          string `mapstructure:"awsRegion"`
	AccessTokenMinutes int    `mapstructure:"accessTokenMinutes"`
	RefreshTokenDays   int    `mapstructure:"refreshTokenDays"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// LoadConfig reads settings/appsettings.yaml, or appsettings.<env>.yaml when env
// is non-empty. Environment variables override file values, e.g. AUTH_JWTSECRET
// or DATABASES_SQL_PASSWORD.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.AddConfigPath(path)
	if env != "" {
		v.SetConfigName("appsettings." + env)
	} else {
		v.SetConfigName("appsettings")
	}
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
