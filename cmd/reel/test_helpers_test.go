package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

type cliTestEnv struct {
	configPath string
	cacheDir   string
	omdbCalls  *atomic.Int64
	geoCalls   *atomic.Int64
}

func setupCLITestEnv(t *testing.T, apiKey string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("API_KEY", "")

	env := &cliTestEnv{
		cacheDir:  filepath.Join(base, "cache"),
		omdbCalls: new(atomic.Int64),
		geoCalls:  new(atomic.Int64),
	}

	omdbRemote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.omdbCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("t") {
		case "Inception":
			_, _ = w.Write([]byte(`{"Title":"Inception","Year":"2010","Genre":"Action, Sci-Fi","Country":"United States, United Kingdom","imdbRating":"8.8","BoxOffice":"$292,587,330","Response":"True"}`))
		case "Amelie":
			_, _ = w.Write([]byte(`{"Title":"Amelie","Year":"2001","Genre":"Comedy, Romance","Country":"France, Germany","imdbRating":"8.3","BoxOffice":"$33,225,499","Response":"True"}`))
		default:
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	t.Cleanup(omdbRemote.Close)

	coordinates := map[string]string{
		"United States":  `[{"lat":"39.78","lon":"-100.45"}]`,
		"United Kingdom": `[{"lat":"54.70","lon":"-3.27"}]`,
		"France":         `[{"lat":"46.60","lon":"1.88"}]`,
	}
	geoRemote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.geoCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if body, ok := coordinates[r.URL.Query().Get("q")]; ok {
			_, _ = w.Write([]byte(body))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(geoRemote.Close)

	env.configPath = filepath.Join(homeDir, ".config", "reel", "config.toml")
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(
		"[omdb]\napi_key = %q\nbase_url = %q\n\n[geocoding]\nbase_url = %q\nmin_interval_ms = 0\n\n[cache]\ndir = %q\n\n[logging]\nlevel = \"error\"\n",
		apiKey,
		omdbRemote.URL,
		geoRemote.URL,
		env.cacheDir,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
