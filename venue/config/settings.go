package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Settings holds server settings. Precedence, lowest first: defaults, the
// HCL settings file, environment variables, command line flags.
//
//	grid_dir  = "grids"
//	grid_file = "mall.txt"
//	scope     = "four"
//	host      = "localhost"
//	port      = 8080
//
//	ngrok {
//	  enabled = true
//	  domain  = "venue.ngrok.app"
//	}
type Settings struct {
	GridDir  string         `hcl:"grid_dir,optional"`
	GridFile string         `hcl:"grid_file,optional"`
	Scope    string         `hcl:"scope,optional"`
	Host     string         `hcl:"host,optional"`
	Port     int            `hcl:"port,optional"`
	Debug    bool           `hcl:"debug,optional"`
	Ngrok    *NgrokSettings `hcl:"ngrok,block"`
}

// NgrokSettings configures the optional public tunnel.
type NgrokSettings struct {
	Enabled   bool   `hcl:"enabled,optional"`
	AuthToken string `hcl:"authtoken,optional"`
	Domain    string `hcl:"domain,optional"`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() *Settings {
	return &Settings{
		GridDir: "grids",
		Scope:   "four",
		Host:    "localhost",
		Port:    8080,
		Ngrok:   &NgrokSettings{},
	}
}

// LoadSettings reads an HCL settings file on top of the defaults. An empty
// path returns the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSettings(src, path)
}

// ParseSettings decodes HCL settings source. filename is used in diagnostics.
func ParseSettings(src []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", filename, diags)
	}

	var decoded Settings
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", filename, diags)
	}

	s := DefaultSettings()
	s.merge(&decoded)
	return s, nil
}

// ApplyEnv overrides settings from GRID_DIR, GRID_FILE, NAV_SCOPE, PORT and
// the NGROK_* variables.
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv("GRID_DIR"); v != "" {
		s.GridDir = v
	}
	if v := os.Getenv("GRID_FILE"); v != "" {
		s.GridFile = v
	}
	if v := os.Getenv("NAV_SCOPE"); v != "" {
		s.Scope = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = p
	}

	if s.Ngrok == nil {
		s.Ngrok = &NgrokSettings{}
	}
	if v := os.Getenv("NGROK_ENABLED"); v == "true" || v == "1" {
		s.Ngrok.Enabled = true
	}
	if v := os.Getenv("NGROK_AUTHTOKEN"); v != "" {
		s.Ngrok.AuthToken = v
	} else if v := os.Getenv("NGROK_AUTH_TOKEN"); v != "" {
		s.Ngrok.AuthToken = v
	}
	if v := os.Getenv("NGROK_DOMAIN"); v != "" {
		s.Ngrok.Domain = v
	}
	return nil
}

// merge copies the fields set in o over s.
func (s *Settings) merge(o *Settings) {
	if o.GridDir != "" {
		s.GridDir = o.GridDir
	}
	if o.GridFile != "" {
		s.GridFile = o.GridFile
	}
	if o.Scope != "" {
		s.Scope = o.Scope
	}
	if o.Host != "" {
		s.Host = o.Host
	}
	if o.Port != 0 {
		s.Port = o.Port
	}
	s.Debug = s.Debug || o.Debug
	if o.Ngrok != nil {
		s.Ngrok = o.Ngrok
	}
}
