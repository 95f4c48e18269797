// Package config holds the handful of environment-tunable defaults this
// library ships: the default hash algorithm and the default media type per
// SD format. It mirrors teacher pkg/configuration's envconfig-driven
// model.Cfg loading, scaled down to what a library needs — no database,
// queue, or HTTP server sections, since those belong to the host process
// (spec §1 Non-goals: storage backend, network transport).
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Defaults holds the process-wide defaults a host application may override
// via environment variables, all under the VC_ prefix.
type Defaults struct {
	HashAlgorithm  string `envconfig:"VC_HASH_ALGORITHM" default:"sha-256"`
	SDJWTMediaType string `envconfig:"VC_SDJWT_MEDIA_TYPE" default:"vc+sd-jwt"`
	SDCWTMediaType string `envconfig:"VC_SDCWT_MEDIA_TYPE" default:"application/vc+cose"`
	TracingService string `envconfig:"VC_TRACING_SERVICE_NAME" default:"vc"`
}

// Load reads Defaults from the environment, falling back to the struct
// tag defaults (sha-256 / vc+sd-jwt / application/vc+cose) when a variable
// is unset — mirroring teacher configuration.New's envconfig.Process call,
// minus the YAML file layer a pure library has no use for.
func Load() (Defaults, error) {
	var d Defaults
	if err := envconfig.Process("", &d); err != nil {
		return Defaults{}, err
	}
	return d, nil
}

// Current is the defaulting entry point every package-level default in this
// module reads from (pkg/issuance, pkg/sdjwt, pkg/sdcwt, pkg/trace), so that
// VC_HASH_ALGORITHM, VC_SDJWT_MEDIA_TYPE, VC_SDCWT_MEDIA_TYPE, and
// VC_TRACING_SERVICE_NAME actually take effect. It re-reads the environment
// on every call rather than caching, the same freshness Load's own callers
// get, since envconfig.Process over a handful of string fields is cheap. A
// Process error (fields here are all plain strings, so this should never
// happen in practice) falls back to the struct-tag defaults rather than
// panicking a caller that didn't check an error return.
func Current() Defaults {
	d, err := Load()
	if err != nil {
		return Defaults{
			HashAlgorithm:  "sha-256",
			SDJWTMediaType: "vc+sd-jwt",
			SDCWTMediaType: "application/vc+cose",
			TracingService: "vc",
		}
	}
	return d
}
