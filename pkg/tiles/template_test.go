package tiles

import (
	"testing"

	errs "github.com/matzehuels/trailblazer/pkg/errors"
)

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TemplateConfig
		wantErr bool
	}{
		{"openstreetmap", Providers["openstreetmap"], false},
		{"subdomain given", TemplateConfig{URL: "https://${s}.example.com/${z}/${x}/${y}.png", Subdomain: "b"}, false},
		{"api key given", TemplateConfig{URL: "https://example.com/${z}/${x}/${y}?key=${k}", APIKey: "k1"}, false},
		{"empty url", TemplateConfig{}, true},
		{"ftp scheme", TemplateConfig{URL: "ftp://example.com/${z}/${x}/${y}"}, true},
		{"missing subdomain", TemplateConfig{URL: "https://${s}.example.com/${z}/${x}/${y}.png"}, true},
		{"missing api key", TemplateConfig{URL: "https://example.com/${z}/${x}/${y}?key=${k}"}, true},
		{"unused subdomain", TemplateConfig{URL: "https://example.com/${z}/${x}/${y}.png", Subdomain: "a"}, true},
		{"unused api key", TemplateConfig{URL: "https://example.com/${z}/${x}/${y}.png", APIKey: "k"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemplate(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTemplate err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("code = %q, want INVALID_CONFIG", errs.GetCode(err))
			}
		})
	}
}

func TestTemplateURL(t *testing.T) {
	osm, err := NewTemplate(Providers["openstreetmap"])
	if err != nil {
		t.Fatal(err)
	}
	if got := osm.URL(1164, 1503, 12); got != "https://tile.openstreetmap.org/12/1164/1503.png" {
		t.Errorf("URL = %q", got)
	}
	if osm.RequiresSubdomain() || osm.RequiresAPIKey() {
		t.Error("openstreetmap needs neither subdomain nor api key")
	}

	tf, err := Provider("thunderforest", "b", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if got := tf.URL(1, 2, 3); got != "https://b.tile.thunderforest.com/cycle/3/1/2.png?apikey=secret" {
		t.Errorf("URL = %q", got)
	}
}

func TestProviderErrors(t *testing.T) {
	if _, err := Provider("nowhere", "", ""); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("unknown provider err = %v", err)
	}
	if _, err := Provider("thunderforest", "", ""); err == nil {
		t.Error("thunderforest without api key should fail")
	}
}
