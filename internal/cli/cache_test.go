package cli

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/matzehuels/learnpath/pkg/config"
)

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/srv/learnpath-cache"

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != cfg.Cache.Dir {
		t.Errorf("cacheDir() = %q, want %q", dir, cfg.Cache.Dir)
	}
}

func TestBackendName(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = ""
	if got := backendName(cfg); got != "file" {
		t.Errorf("backendName() = %q, want file", got)
	}
	cfg.Cache.Backend = "redis"
	if got := backendName(cfg); got != "redis" {
		t.Errorf("backendName() = %q, want redis", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeDoc(t, "skills.json", triangleDoc)

	if err := env.run(t, "generate", input, "-o", filepath.Join(t.TempDir(), "out.json")); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if n := countFiles(t, env.cacheDir); n == 0 {
		t.Fatal("generate should have written a cache entry")
	}

	if err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if n := countFiles(t, env.cacheDir); n != 0 {
		t.Errorf("cache clear left %d files", n)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return n
}
