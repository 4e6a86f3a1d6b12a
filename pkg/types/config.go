package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "linkresolver/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ResolverConfig holds settings for the results page service and CLI.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BackendURL is the links endpoint queried once per page view.
	BackendURL string `json:"backend_url" yaml:"backend_url" mapstructure:"backend_url"`

	// BackendToken is the bearer credential for BackendURL. When empty the
	// backend-token file in SecretsDir is used.
	BackendToken string `json:"-" yaml:"-" mapstructure:"backend_token"`

	// MetadataFile is the static citation artifact (JSON or YAML). Empty
	// selects the embedded default.
	MetadataFile string `json:"metadata_file" yaml:"metadata_file" mapstructure:"metadata_file"`

	// Listen is the HTTP listen address (default ":8080").
	Listen string `json:"listen" yaml:"listen" mapstructure:"listen"`

	// RenderTimeout bounds how long a page view waits for the fetch before
	// rendering the loading state (default 10s).
	RenderTimeout time.Duration `json:"render_timeout" yaml:"render_timeout" mapstructure:"render_timeout"`

	// MaxRetries caps backend retries on 429/503. 0 disables retries and a
	// negative value selects the default (2). The CLI defaults the key to 2.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// ExcludeTargets lists target URLs dropped from every backend response.
	ExcludeTargets []string `json:"exclude_targets,omitempty" yaml:"exclude_targets,omitempty" mapstructure:"exclude_targets"`

	// SecretsDir holds credential files, one per key (default ".secrets").
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`

	// Environment labels the deployment (e.g. "production", "dev").
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`
}

const (
	DefaultListen        = ":8080"
	DefaultRenderTimeout = 10 * time.Second
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "linkresolver/0.1"
	DefaultMaxRetries    = 2
	DefaultSecretsDir    = ".secrets"
)

// WithDefaults returns a copy of c with unset values replaced by defaults.
// MaxRetries is unset only when negative, since 0 is meaningful.
func (c ResolverConfig) WithDefaults() ResolverConfig {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = DefaultRenderTimeout
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.SecretsDir == "" {
		c.SecretsDir = DefaultSecretsDir
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	return c
}
