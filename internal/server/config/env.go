package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gophdrop/internal/flagx"
)

const envPrefix = "GOPHDROP_"

// EnvConfig lists the environment variables (all prefixed with GOPHDROP_).
// Unset variables leave the pointer nil and the current value untouched.
type EnvConfig struct {
	EndpointAddrGRPC             *string        `env:"ENDPOINT_ADDR_GRPC"`
	EndpointAddrHTTP             *string        `env:"ENDPOINT_ADDR_HTTP"`
	AccountBackend               *string        `env:"ACCOUNT_BACKEND"`
	DatabaseDSN                  *string        `env:"DATABASE_DSN"`
	SecretKey                    *string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration  *time.Duration `env:"ACCESS_TOKEN_VALIDITY_DURATION"`
	RefreshTokenValidityDuration *time.Duration `env:"REFRESH_TOKEN_VALIDITY_DURATION"`
	StorageBackend               *string        `env:"STORAGE_BACKEND"`
	UploadDir                    *string        `env:"UPLOAD_DIR"`
	S3RootUser                   *string        `env:"S3_ROOT_USER"`
	S3RootPassword               *string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket                     *string        `env:"S3_BUCKET"`
	S3Region                     *string        `env:"S3_REGION"`
	S3BaseEndpoint               *string        `env:"S3_BASE_ENDPOINT"`
	MinioEndpoint                *string        `env:"MINIO_ENDPOINT"`
	MinioUseSSL                  *bool          `env:"MINIO_USE_SSL"`
	LogBackend                   *string        `env:"LOG_BACKEND"`
	LogFormat                    *string        `env:"LOG_FORMAT"`
	LogLevel                     *string        `env:"LOG_LEVEL"`
	StrictVisibility             *bool          `env:"STRICT_VISIBILITY"`
	PublicDeleteAdmins           []string       `env:"PUBLIC_DELETE_ADMINS" envSeparator:","`
	MaxUploadBytes               *int64         `env:"MAX_UPLOAD_BYTES"`
}

// parseEnv loads the dotenv file (-env-file, or ./.env when present) and
// then overlays GOPHDROP_* variables onto config. Variables already set in
// the process environment win over the dotenv file. A non-nil environ
// replaces the process environment, which tests use.
func parseEnv(config *Config, args []string, environ map[string]string) error {
	if environ == nil {
		if err := loadDotenv(flagx.EnvFileFlag(args)); err != nil {
			return err
		}
	}

	ec := EnvConfig{}
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	ec.apply(config)
	return nil
}

func loadDotenv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (ec *EnvConfig) apply(c *Config) {
	setIf(&c.EndpointAddrGRPC, ec.EndpointAddrGRPC)
	setIf(&c.EndpointAddrHTTP, ec.EndpointAddrHTTP)
	setIf(&c.AccountBackend, ec.AccountBackend)
	setIf(&c.DatabaseDSN, ec.DatabaseDSN)
	setIf(&c.SecretKey, ec.SecretKey)
	setIf(&c.AccessTokenValidityDuration, ec.AccessTokenValidityDuration)
	setIf(&c.RefreshTokenValidityDuration, ec.RefreshTokenValidityDuration)
	setIf(&c.StorageBackend, ec.StorageBackend)
	setIf(&c.UploadDir, ec.UploadDir)
	setIf(&c.S3RootUser, ec.S3RootUser)
	setIf(&c.S3RootPassword, ec.S3RootPassword)
	setIf(&c.S3Bucket, ec.S3Bucket)
	setIf(&c.S3Region, ec.S3Region)
	setIf(&c.S3BaseEndpoint, ec.S3BaseEndpoint)
	setIf(&c.MinioEndpoint, ec.MinioEndpoint)
	setIf(&c.MinioUseSSL, ec.MinioUseSSL)
	setIf(&c.LogBackend, ec.LogBackend)
	setIf(&c.LogFormat, ec.LogFormat)
	setIf(&c.LogLevel, ec.LogLevel)
	setIf(&c.StrictVisibility, ec.StrictVisibility)
	if len(ec.PublicDeleteAdmins) > 0 {
		c.PublicDeleteAdmins = ec.PublicDeleteAdmins
	}
	setIf(&c.MaxUploadBytes, ec.MaxUploadBytes)
}
