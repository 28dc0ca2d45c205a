package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophdrop/internal/flagx"
	"github.com/dmitrijs2005/gophdrop/internal/timex"
)

// FileConfig is the on-disk shape of the configuration, used only while
// decoding. Pointer fields distinguish "absent" from "zero" so a file only
// overrides the keys it mentions. Durations use timex.Duration and accept
// "15m" as well as integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	AccountBackend               *string         `json:"account_backend" yaml:"account_backend"`
	DatabaseDSN                  *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    *string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	StorageBackend               *string         `json:"storage_backend" yaml:"storage_backend"`
	UploadDir                    *string         `json:"upload_dir" yaml:"upload_dir"`
	S3RootUser                   *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	MinioEndpoint                *string         `json:"minio_endpoint" yaml:"minio_endpoint"`
	MinioUseSSL                  *bool           `json:"minio_use_ssl" yaml:"minio_use_ssl"`
	LogBackend                   *string         `json:"log_backend" yaml:"log_backend"`
	LogFormat                    *string         `json:"log_format" yaml:"log_format"`
	LogLevel                     *string         `json:"log_level" yaml:"log_level"`
	StrictVisibility             *bool           `json:"strict_visibility" yaml:"strict_visibility"`
	PublicDeleteAdmins           []string        `json:"public_delete_admins" yaml:"public_delete_admins"`
	MaxUploadBytes               *int64          `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// parseFile loads the file named by -c/-config, if any, into config.
// Files ending in .yaml or .yml are decoded as YAML after expanding
// ${VAR} references; everything else is decoded as JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)

	// nothing to load
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(c *Config) {
	setIf(&c.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setIf(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setIf(&c.AccountBackend, fc.AccountBackend)
	setIf(&c.DatabaseDSN, fc.DatabaseDSN)
	setIf(&c.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration != nil {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration != nil {
		c.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	setIf(&c.StorageBackend, fc.StorageBackend)
	setIf(&c.UploadDir, fc.UploadDir)
	setIf(&c.S3RootUser, fc.S3RootUser)
	setIf(&c.S3RootPassword, fc.S3RootPassword)
	setIf(&c.S3Bucket, fc.S3Bucket)
	setIf(&c.S3Region, fc.S3Region)
	setIf(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setIf(&c.MinioEndpoint, fc.MinioEndpoint)
	setIf(&c.MinioUseSSL, fc.MinioUseSSL)
	setIf(&c.LogBackend, fc.LogBackend)
	setIf(&c.LogFormat, fc.LogFormat)
	setIf(&c.LogLevel, fc.LogLevel)
	setIf(&c.StrictVisibility, fc.StrictVisibility)
	if fc.PublicDeleteAdmins != nil {
		c.PublicDeleteAdmins = fc.PublicDeleteAdmins
	}
	setIf(&c.MaxUploadBytes, fc.MaxUploadBytes)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
