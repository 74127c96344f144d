package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/khonsu303/estudio/internal/flagx"
	"github.com/khonsu303/estudio/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for decoding config files. Zero values leave the
// corresponding Config field untouched.
type FileConfig struct {
	HTTPAddr              string         `json:"http_addr" yaml:"http_addr"`
	GRPCHealthAddr        string         `json:"grpc_health_addr" yaml:"grpc_health_addr"`
	DatabaseDSN           string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	Env                   string         `json:"env" yaml:"env"`
	LogBackend            string         `json:"log_backend" yaml:"log_backend"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
	BcryptCost            int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	EventSubjectCascade   string         `json:"event_subject_cascade" yaml:"event_subject_cascade"`
	AuthRateLimit         float64        `json:"auth_rate_limit" yaml:"auth_rate_limit"`
	AuthRateBurst         int            `json:"auth_rate_burst" yaml:"auth_rate_burst"`
	RedisAddr             string         `json:"redis_addr" yaml:"redis_addr"`
	KafkaBrokers          []string       `json:"kafka_brokers" yaml:"kafka_brokers"`
	KafkaTopic            string         `json:"kafka_topic" yaml:"kafka_topic"`
	S3RootUser            string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	AvatarUploadValidity  timex.Duration `json:"avatar_upload_validity" yaml:"avatar_upload_validity"`
}

// parseFile loads the file named by -c/-config, if any. The format follows
// the extension: .yaml/.yml is YAML, anything else JSON. An unreadable or
// malformed file panics.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.HTTPAddr, fc.HTTPAddr)
	set(&cfg.GRPCHealthAddr, fc.GRPCHealthAddr)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.SecretKey, fc.SecretKey)
	set(&cfg.Env, fc.Env)
	set(&cfg.LogBackend, fc.LogBackend)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.EventSubjectCascade, fc.EventSubjectCascade)
	set(&cfg.RedisAddr, fc.RedisAddr)
	set(&cfg.KafkaTopic, fc.KafkaTopic)
	set(&cfg.S3RootUser, fc.S3RootUser)
	set(&cfg.S3RootPassword, fc.S3RootPassword)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)

	if fc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = fc.TokenValidityDuration.Duration
	}
	if fc.AvatarUploadValidity.Duration != 0 {
		cfg.AvatarUploadValidity = fc.AvatarUploadValidity.Duration
	}
	if fc.BcryptCost != 0 {
		cfg.BcryptCost = fc.BcryptCost
	}
	if fc.AuthRateLimit != 0 {
		cfg.AuthRateLimit = fc.AuthRateLimit
	}
	if fc.AuthRateBurst != 0 {
		cfg.AuthRateBurst = fc.AuthRateBurst
	}
	if len(fc.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = fc.KafkaBrokers
	}
}
