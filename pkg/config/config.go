// Package config loads warcli settings from a TOML file.
//
// Settings supply defaults for the graph create command. Command-line flags
// always win over settings, and a missing settings file is not an error:
// every field then keeps the built-in default.
//
//	network = "warnet"
//
//	[graph]
//	version = "26.0"
//	image = "bitcoindevproject/bitcoin:26.0"
//	extra_outbound = 7
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/warnet/warcli/pkg/errors"
	"github.com/warnet/warcli/pkg/graphml"
	"github.com/warnet/warcli/pkg/topology"
)

const (
	appName  = "warcli"
	fileName = "config.toml"

	// DefaultNetwork is the network name used when none is configured.
	DefaultNetwork = "warnet"
)

// Config is the decoded settings file.
type Config struct {
	Network string `toml:"network"`
	Graph   Graph  `toml:"graph"`
}

// Graph holds defaults for generated topologies and their node attributes.
type Graph struct {
	Version       string `toml:"version"`
	BitcoinConf   string `toml:"bitcoin_conf"`
	Image         string `toml:"image"`
	TcNetem       string `toml:"tc_netem"`
	BuildArgs     string `toml:"build_args"`
	Exporter      bool   `toml:"exporter"`
	CollectLogs   bool   `toml:"collect_logs"`
	ExtraOutbound *int   `toml:"extra_outbound"`
}

// Default returns the built-in settings.
func Default() *Config {
	extra := topology.DefaultExtraOutbound
	return &Config{
		Network: DefaultNetwork,
		Graph: Graph{
			Version:       graphml.DefaultVersion,
			ExtraOutbound: &extra,
		},
	}
}

// Path returns the settings file location using the XDG standard
// (~/.config/warcli/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the settings at path on top of [Default]. An empty path means
// [Path]. A missing file yields the defaults; an explicitly named missing
// file is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks field values after decoding.
func (c *Config) Validate() error {
	if c.Network == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "network cannot be empty")
	}
	if c.Graph.Version != "" {
		if err := errors.ValidateVersion(c.Graph.Version); err != nil {
			return err
		}
	}
	if c.Graph.ExtraOutbound != nil {
		if k := *c.Graph.ExtraOutbound; k < 0 || k > topology.DefaultExtraOutbound {
			return errors.New(errors.ErrCodeInvalidConfig, "extra_outbound must be between 0 and %d, got %d", topology.DefaultExtraOutbound, k)
		}
	}
	return nil
}

// Values returns the node attribute values configured in g. BitcoinConfig
// is left empty; it is produced from BitcoinConf by package bitcoinconf.
func (g Graph) Values() graphml.Values {
	return graphml.Values{
		Version:     g.Version,
		TcNetem:     g.TcNetem,
		BuildArgs:   g.BuildArgs,
		Exporter:    g.Exporter,
		CollectLogs: g.CollectLogs,
		Image:       g.Image,
	}
}

// Extra returns the configured number of extra outbound connections.
func (g Graph) Extra() int {
	if g.ExtraOutbound == nil {
		return topology.DefaultExtraOutbound
	}
	return *g.ExtraOutbound
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
