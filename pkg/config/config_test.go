package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
	"github.com/warnet/warcli/pkg/topology"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q, want %q", cfg.Network, DefaultNetwork)
	}
	if cfg.Graph.Version != graphml.DefaultVersion {
		t.Errorf("Version = %q, want %q", cfg.Graph.Version, graphml.DefaultVersion)
	}
	if cfg.Graph.Extra() != topology.DefaultExtraOutbound {
		t.Errorf("Extra() = %d, want %d", cfg.Graph.Extra(), topology.DefaultExtraOutbound)
	}
	if v := cfg.Graph.Values(); v.Exporter || v.CollectLogs || v.Image != "" || v.BitcoinConfig != "" {
		t.Errorf("Values() = %+v, want zero placeholders", v)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
network = "signet-lab"

[graph]
version = "27.0"
image = "bitcoindevproject/bitcoin:27.0"
collect_logs = true
extra_outbound = 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Network != "signet-lab" {
		t.Errorf("Network = %q", cfg.Network)
	}
	v := cfg.Graph.Values()
	if v.Version != "27.0" || v.Image != "bitcoindevproject/bitcoin:27.0" || !v.CollectLogs || v.Exporter {
		t.Errorf("Values() = %+v", v)
	}
	if cfg.Graph.Extra() != 3 {
		t.Errorf("Extra() = %d, want 3", cfg.Graph.Extra())
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "[graph]\nexporter = true\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Network != DefaultNetwork || cfg.Graph.Version != graphml.DefaultVersion {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if !cfg.Graph.Exporter {
		t.Error("Exporter not applied")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
		msg     string
	}{
		{"syntax", "network = ", errors.ErrCodeInvalidConfig, ""},
		{"unknown key", "[graph]\nversions = \"27.0\"\n", errors.ErrCodeInvalidConfig, "graph.versions"},
		{"bad version", "[graph]\nversion = \"27 .0\"\n", errors.ErrCodeInvalidConfig, "whitespace"},
		{"negative extra", "[graph]\nextra_outbound = -1\n", errors.ErrCodeInvalidConfig, "between 0 and 7"},
		{"extra above default", "[graph]\nextra_outbound = 20\n", errors.ErrCodeInvalidConfig, "got 20"},
		{"empty network", "network = \"\"\n", errors.ErrCodeInvalidConfig, "network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q missing %q", err, tt.msg)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q", cfg.Network)
	}

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "warcli", "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Graph.Image = "img:1"

	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Load(writeFile(t, string(data)))
	if err != nil {
		t.Fatalf("Load(encoded) error = %v\n%s", err, data)
	}
	if got.Graph.Image != "img:1" || got.Graph.Extra() != topology.DefaultExtraOutbound {
		t.Errorf("round trip = %+v", got.Graph)
	}
}
