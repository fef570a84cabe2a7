package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	def := Default()
	if cfg.DataRoot != def.DataRoot || cfg.Server.Addr != def.Server.Addr {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	os.WriteFile(path, []byte(`
data_root: /srv/campaign
server:
  enabled: false
  addr: ":9000"
audio:
  master_volume: 0.2
`), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataRoot != "/srv/campaign" {
		t.Errorf("data_root = %q", cfg.DataRoot)
	}
	if cfg.Server.Enabled || cfg.Server.Addr != ":9000" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Audio.MasterVolume != 0.2 {
		t.Errorf("volume = %v", cfg.Audio.MasterVolume)
	}
	// Untouched fields keep their defaults
	if cfg.Visual.StarDensity != Default().Visual.StarDensity {
		t.Errorf("star_density = %d", cfg.Visual.StarDensity)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	os.WriteFile(path, []byte("audio:\n  master_volume: 3.0\n"), 0o644)

	if _, err := Load(path); err == nil {
		t.Errorf("out-of-range volume must be rejected")
	}

	os.WriteFile(path, []byte("data_root: ''\n"), 0o644)
	if _, err := Load(path); err == nil {
		t.Errorf("empty data_root must be rejected")
	}

	os.WriteFile(path, []byte("{not yaml"), 0o644)
	if _, err := Load(path); err == nil {
		t.Errorf("malformed yaml must be rejected")
	}
}
