package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetURL(t *testing.T, v string) {
	t.Helper()
	orig := flagURL
	flagURL = v
	t.Cleanup(func() { flagURL = orig })
}

// writeConfigFile points HOME at a temp dir and writes content as the CLI
// config file. Empty content leaves no file.
func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if content == "" {
		return
	}
	dir := filepath.Join(home, ".graphkernel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveConfig(t *testing.T) {
	profiles := `
active_profile: staging
profiles:
  default:
    url: http://default:3030
  staging:
    url: http://staging:4040
`
	tests := []struct {
		name   string
		flag   string
		env    string
		config string
		want   string
	}{
		{name: "defaults", flag: defaultURL, want: defaultURL},
		{name: "env overrides default", flag: defaultURL, env: "http://env:9090", want: "http://env:9090"},
		{name: "flag beats env", flag: "http://flag:1234", env: "http://env:9090", want: "http://flag:1234"},
		{name: "env beats file", flag: defaultURL, env: "http://env:9090", config: profiles, want: "http://env:9090"},
		{name: "flat file", flag: defaultURL, config: "url: http://flat:8080\n", want: "http://flat:8080"},
		{name: "active profile", flag: defaultURL, config: profiles, want: "http://staging:4040"},
		{
			name:   "default profile",
			flag:   defaultURL,
			config: "profiles:\n  default:\n    url: http://default-profile:5050\n",
			want:   "http://default-profile:5050",
		},
		{name: "flag beats file", flag: "http://flag:1234", config: profiles, want: "http://flag:1234"},
		{name: "unparsable file ignored", flag: defaultURL, config: "url: [unclosed\n", want: defaultURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetURL(t, tt.flag)
			t.Setenv("GRAPHKERNEL_URL", tt.env)
			writeConfigFile(t, tt.config)

			resolveConfig()

			if flagURL != tt.want {
				t.Errorf("flagURL = %q, want %q", flagURL, tt.want)
			}
		})
	}
}

func TestConfigCheck(t *testing.T) {
	t.Run("missing file passes", func(t *testing.T) {
		writeConfigFile(t, "")
		if r := configCheck(); !r.Passed {
			t.Errorf("configCheck = %+v, want passed", r)
		}
	})
	t.Run("bad yaml fails", func(t *testing.T) {
		writeConfigFile(t, "profiles: [\n")
		if r := configCheck(); r.Passed {
			t.Errorf("configCheck = %+v, want failed", r)
		}
	})
}
