package httpclient

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvHostname       = "AAP_HOSTNAME"
	EnvUsername       = "AAP_USERNAME"
	EnvPassword       = "AAP_PASSWORD"
	EnvToken          = "AAP_TOKEN"
	EnvRequestTimeout = "AAP_REQUEST_TIMEOUT"
	EnvValidateCerts  = "AAP_VALIDATE_CERTS"
	EnvCABundle       = "AAP_CA_BUNDLE"
)

// DefaultRequestTimeout is the per-request timeout in seconds when neither an
// override nor AAP_REQUEST_TIMEOUT supplies one.
const DefaultRequestTimeout = 10

// Overrides carries explicit connection settings, typically collected from
// command-line flags. A zero value means "not set" for every field;
// ValidateCerts is a pointer so an explicit false is distinguishable from
// unset.
type Overrides struct {
	Hostname       string
	Username       string
	Password       string
	Token          string
	RequestTimeout int
	ValidateCerts  *bool
	CABundle       string
}

// Config holds the connection parameters shared by every transport client in
// a process. It is immutable after LoadConfig returns.
type Config struct {
	Hostname       string
	Username       string
	Password       string
	Token          string
	RequestTimeout int  // seconds
	ValidateCerts  bool // verify server certificates
	CABundle       string
}

// LoadConfig assembles a Config from explicit overrides layered over
// environment variables. Precedence per field: explicit override, then
// environment, then built-in default (defaults exist only for RequestTimeout
// and ValidateCerts). A .env file in the working directory is loaded first;
// values already present in the process environment win over it.
//
// LoadConfig never fails: validation is a separate, explicit step so that
// commands which need no connection (e.g. version) can still construct one.
func LoadConfig(o Overrides) *Config {
	_ = godotenv.Load() // no error if .env doesn't exist

	cfg := &Config{
		Hostname:       firstNonEmpty(o.Hostname, os.Getenv(EnvHostname)),
		Username:       firstNonEmpty(o.Username, os.Getenv(EnvUsername)),
		Password:       firstNonEmpty(o.Password, os.Getenv(EnvPassword)),
		Token:          firstNonEmpty(o.Token, os.Getenv(EnvToken)),
		CABundle:       firstNonEmpty(o.CABundle, os.Getenv(EnvCABundle)),
		RequestTimeout: DefaultRequestTimeout,
		ValidateCerts:  true,
	}

	if o.RequestTimeout > 0 {
		cfg.RequestTimeout = o.RequestTimeout
	} else if v := os.Getenv(EnvRequestTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = n
		}
	}

	if o.ValidateCerts != nil {
		cfg.ValidateCerts = *o.ValidateCerts
	} else if v := os.Getenv(EnvValidateCerts); v != "" {
		cfg.ValidateCerts = parseBool(v)
	}

	return cfg
}

// BaseURL returns the hostname with exactly one trailing slash stripped.
// It fails with ErrConfiguration when the hostname is empty or lacks a URI
// scheme; that is a configuration mistake, not a network condition, and is
// reported before any connection is attempted.
func (c *Config) BaseURL() (string, error) {
	if c.Hostname == "" {
		return "", ErrConfiguration.Msg("hostname is not set: use --hostname or " + EnvHostname)
	}
	if !strings.HasPrefix(c.Hostname, "http://") && !strings.HasPrefix(c.Hostname, "https://") {
		return "", ErrConfiguration.Msg(fmt.Sprintf("hostname %q must start with http:// or https://", c.Hostname))
	}
	return strings.TrimSuffix(c.Hostname, "/"), nil
}

// Validate checks that the configuration carries enough information to
// authenticate. It is not run on construction; callers invoke it once before
// first network use.
func (c *Config) Validate() error {
	if _, err := c.BaseURL(); err != nil {
		return err
	}
	if c.Token == "" && (c.Username == "" || c.Password == "") {
		return ErrConfiguration.Msg("no credentials configured: set " + EnvToken + ", or " + EnvUsername + " and " + EnvPassword)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseBool recognizes the usual affirmative spellings case-insensitively;
// everything else is false.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
