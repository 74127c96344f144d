package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv seeds the process environment from path (usually ".env").
// Variables already set in the environment win. A missing file is fine.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseEnv overlays ESTUDIO_* environment variables. Malformed numbers and
// durations panic, same as a malformed config file.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("ESTUDIO_HTTP_ADDR", &cfg.HTTPAddr)
	str("ESTUDIO_GRPC_HEALTH_ADDR", &cfg.GRPCHealthAddr)
	str("ESTUDIO_DATABASE_DSN", &cfg.DatabaseDSN)
	str("ESTUDIO_SECRET_KEY", &cfg.SecretKey)
	str("ESTUDIO_ENV", &cfg.Env)
	str("ESTUDIO_LOG_BACKEND", &cfg.LogBackend)
	str("ESTUDIO_LOG_LEVEL", &cfg.LogLevel)
	str("ESTUDIO_EVENT_SUBJECT_CASCADE", &cfg.EventSubjectCascade)
	str("ESTUDIO_REDIS_ADDR", &cfg.RedisAddr)
	str("ESTUDIO_KAFKA_TOPIC", &cfg.KafkaTopic)
	str("ESTUDIO_S3_ROOT_USER", &cfg.S3RootUser)
	str("ESTUDIO_S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	str("ESTUDIO_S3_BUCKET", &cfg.S3Bucket)
	str("ESTUDIO_S3_REGION", &cfg.S3Region)
	str("ESTUDIO_S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)

	if v, ok := lookup("ESTUDIO_KAFKA_BROKERS"); ok && v != "" {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := lookup("ESTUDIO_TOKEN_VALIDITY"); ok && v != "" {
		cfg.TokenValidityDuration = mustDuration(v)
	}
	if v, ok := lookup("ESTUDIO_AVATAR_UPLOAD_VALIDITY"); ok && v != "" {
		cfg.AvatarUploadValidity = mustDuration(v)
	}
	if v, ok := lookup("ESTUDIO_BCRYPT_COST"); ok && v != "" {
		cfg.BcryptCost = mustInt(v)
	}
	if v, ok := lookup("ESTUDIO_AUTH_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.AuthRateLimit = f
	}
	if v, ok := lookup("ESTUDIO_AUTH_RATE_BURST"); ok && v != "" {
		cfg.AuthRateBurst = mustInt(v)
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}

func mustInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	return n
}
