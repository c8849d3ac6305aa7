package tiles

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
)

// Template placeholders.
const (
	PlaceholderX         = "${x}"
	PlaceholderY         = "${y}"
	PlaceholderZ         = "${z}"
	PlaceholderSubdomain = "${s}"
	PlaceholderAPIKey    = "${k}"
)

// TemplateConfig describes a tile source before validation.
type TemplateConfig struct {
	URL       string `toml:"url" yaml:"url"`
	Subdomain string `toml:"subdomain" yaml:"subdomain"`
	APIKey    string `toml:"api_key" yaml:"api_key"`
}

// Providers holds the built-in tile sources by name.
var Providers = map[string]TemplateConfig{
	"openstreetmap": {URL: "https://tile.openstreetmap.org/${z}/${x}/${y}.png"},
	"opentopomap":   {URL: "https://${s}.tile.opentopomap.org/${z}/${x}/${y}.png", Subdomain: "a"},
	"thunderforest": {URL: "https://${s}.tile.thunderforest.com/cycle/${z}/${x}/${y}.png?apikey=${k}", Subdomain: "a"},
}

// Template is a validated tile URL template.
type Template struct {
	url       string
	subdomain string
	apiKey    string
}

// NewTemplate validates cfg: the URL must be http or https, and a subdomain
// or API key must be given exactly when the URL uses ${s} or ${k}.
func NewTemplate(cfg TemplateConfig) (Template, error) {
	if err := errs.ValidateURL(cfg.URL); err != nil {
		return Template{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "tile url")
	}
	t := Template{url: cfg.URL, subdomain: cfg.Subdomain, apiKey: cfg.APIKey}

	switch {
	case t.RequiresSubdomain() && cfg.Subdomain == "":
		return Template{}, errs.New(errs.ErrCodeInvalidConfig, "tile url %q needs a subdomain", cfg.URL)
	case !t.RequiresSubdomain() && cfg.Subdomain != "":
		return Template{}, errs.New(errs.ErrCodeInvalidConfig, "tile url %q has no %s placeholder for subdomain %q", cfg.URL, PlaceholderSubdomain, cfg.Subdomain)
	case t.RequiresAPIKey() && cfg.APIKey == "":
		return Template{}, errs.New(errs.ErrCodeInvalidConfig, "tile url %q needs an api key", cfg.URL)
	case !t.RequiresAPIKey() && cfg.APIKey != "":
		return Template{}, errs.New(errs.ErrCodeInvalidConfig, "tile url %q has no %s placeholder for the api key", cfg.URL, PlaceholderAPIKey)
	}
	return t, nil
}

// Provider builds the template of a built-in provider, overriding its
// subdomain and API key when non-empty.
func Provider(name, subdomain, apiKey string) (Template, error) {
	cfg, ok := Providers[name]
	if !ok {
		return Template{}, errs.New(errs.ErrCodeInvalidConfig, "unknown tile provider %q", name)
	}
	if subdomain != "" {
		cfg.Subdomain = subdomain
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return NewTemplate(cfg)
}

// RequiresSubdomain reports whether the URL contains ${s}.
func (t Template) RequiresSubdomain() bool {
	return strings.Contains(t.url, PlaceholderSubdomain)
}

// RequiresAPIKey reports whether the URL contains ${k}.
func (t Template) RequiresAPIKey() bool {
	return strings.Contains(t.url, PlaceholderAPIKey)
}

// String returns the raw template.
func (t Template) String() string { return t.url }

// URL substitutes the tile coordinates, subdomain and API key.
func (t Template) URL(x, y, z int) string {
	return strings.NewReplacer(
		PlaceholderX, strconv.Itoa(x),
		PlaceholderY, strconv.Itoa(y),
		PlaceholderZ, strconv.Itoa(z),
		PlaceholderSubdomain, t.subdomain,
		PlaceholderAPIKey, t.apiKey,
	).Replace(t.url)
}
