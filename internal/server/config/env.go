package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/savvysnip/internal/timex"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "SAVVYSNIP_"

// parseEnv loads envFile (if present) into the process environment without
// overriding variables that are already set, then reads SAVVYSNIP_* values
// through lookup.
func parseEnv(config *Config, envFile string, lookup func(string) (string, bool)) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"GRPC_ADDR":             &config.EndpointAddrGRPC,
		"HTTP_ADDR":             &config.EndpointAddrHTTP,
		"DATABASE_DSN":          &config.DatabaseDSN,
		"SECRET_KEY":            &config.SecretKey,
		"S3_USER":               &config.S3RootUser,
		"S3_PASSWORD":           &config.S3RootPassword,
		"S3_BUCKET":             &config.S3Bucket,
		"S3_REGION":             &config.S3Region,
		"S3_ENDPOINT":           &config.S3BaseEndpoint,
		"LOGGER":                &config.Logger,
		"EXTERNAL_TOKEN_SECRET": &config.ExternalTokenSecret,
		"EXTERNAL_TOKEN_ISSUER": &config.ExternalTokenIssuer,
		"PUBLIC_URL":            &config.PublicURL,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":  &config.AccessTokenValidityDuration,
		"REFRESH_TOKEN_TTL": &config.RefreshTokenValidityDuration,
		"RESET_TOKEN_TTL":   &config.ResetTokenValidityDuration,
		"EXPORT_LINK_TTL":   &config.ExportLinkValidityDuration,
	}
	for name, dst := range durations {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
