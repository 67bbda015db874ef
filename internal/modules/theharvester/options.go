package theharvester

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"harvestx/internal/core/domain"
	"harvestx/internal/platform/registry"
	"harvestx/internal/platform/validator"
)

// Option keys recognized by the module.
const (
	OptHost       = "th_host"
	OptPort       = "th_port"
	OptSources    = "th_sources"
	OptMarkPolicy = "th_mark_policy"
	OptTimeout    = "th_timeout"
	OptRateLimit  = "th_ratelimit"
)

// DefaultSources are the theHarvester sources queried when th_sources is unset.
const DefaultSources = "bing, baidu, duckduckgo, linkedin, sublist3r, twitter, qwant, linkedin_links, otx"

// MarkPolicy decides when an input is recorded in the seen set.
type MarkPolicy string

const (
	// MarkOnReceipt marks an input as soon as it arrives; a failed harvest
	// is not retried for the rest of the scan.
	MarkOnReceipt MarkPolicy = "receipt"

	// MarkOnSuccess forgets the input again when the harvest fails, so a
	// later event with the same data triggers a new attempt.
	MarkOnSuccess MarkPolicy = "success"
)

// Options is the module configuration, immutable after setup.
type Options struct {
	Host       string
	Port       string
	Sources    []string
	MarkPolicy MarkPolicy

	// Timeout bounds each harvest request.
	Timeout time.Duration

	// RateLimit in requests per second, 0 = unlimited.
	RateLimit float64

	// Extra holds unrecognized option keys. They are accepted and kept but unused.
	Extra map[string]string
}

// OptionDescriptions documents the recognized options.
var OptionDescriptions = map[string]string{
	OptHost:       "Host where the theHarvester service is.",
	OptPort:       "Port where the service is exposed.",
	OptSources:    "theHarvester sources (separated by commas).",
	OptMarkPolicy: "When to remember a domain: receipt (never retried) or success (retried after a failure).",
	OptTimeout:    "Request timeout in seconds.",
	OptRateLimit:  "Maximum requests per second to the service (0 = unlimited).",
}

// DefaultOptions returns the defaults for every recognized option.
func DefaultOptions() Options {
	return Options{
		Host:       "localhost",
		Port:       "5000",
		Sources:    registry.SplitList(DefaultSources),
		MarkPolicy: MarkOnReceipt,
		Timeout:    60 * time.Second,
		RateLimit:  0,
		Extra:      map[string]string{},
	}
}

// ParseOptions merges user options over the defaults and validates them.
func ParseOptions(user map[string]string) (Options, error) {
	opts := DefaultOptions()

	opts.Host = registry.GetString(user, OptHost, opts.Host)
	opts.Port = registry.GetString(user, OptPort, opts.Port)
	opts.Sources = registry.GetList(user, OptSources, opts.Sources)
	opts.MarkPolicy = MarkPolicy(strings.ToLower(registry.GetString(user, OptMarkPolicy, string(opts.MarkPolicy))))
	if secs := registry.GetInt(user, OptTimeout, 0); secs > 0 {
		opts.Timeout = time.Duration(secs) * time.Second
	}
	if v, ok := user[OptRateLimit]; ok {
		if rps, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && rps >= 0 {
			opts.RateLimit = rps
		}
	}

	for k, v := range user {
		if _, known := OptionDescriptions[k]; !known {
			opts.Extra[k] = v
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks host, port and mark policy.
func (o Options) Validate() error {
	if !validator.IsHost(o.Host) {
		return fmt.Errorf("%w: %s=%q", domain.ErrInvalidConfig, OptHost, o.Host)
	}
	if !validator.IsPort(o.Port) {
		return fmt.Errorf("%w: %s=%q", domain.ErrInvalidConfig, OptPort, o.Port)
	}
	// el host tiene que sobrevivir a la URL tal cual (ej: "a?b" o "user@h" no)
	u, err := url.Parse(o.BaseURL())
	if err != nil || u.Hostname() != o.hostname() {
		return fmt.Errorf("%w: %s=%q is not usable in a URL", domain.ErrInvalidConfig, OptHost, o.Host)
	}
	if len(o.Sources) == 0 {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidConfig, OptSources)
	}
	switch o.MarkPolicy {
	case MarkOnReceipt, MarkOnSuccess:
	default:
		return fmt.Errorf("%w: %s=%q", domain.ErrInvalidConfig, OptMarkPolicy, o.MarkPolicy)
	}
	return nil
}

// BaseURL is http://{host}:{port}. IPv6 hosts are bracketed.
func (o Options) BaseURL() string {
	return "http://" + net.JoinHostPort(o.hostname(), o.Port)
}

// hostname is Host without IPv6 brackets.
func (o Options) hostname() string {
	return strings.TrimSuffix(strings.TrimPrefix(o.Host, "["), "]")
}

// SourcesParam is the comma-joined source list sent with each request.
func (o Options) SourcesParam() string {
	return strings.Join(o.Sources, ",")
}
