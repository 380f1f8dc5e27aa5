package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/catalog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, catalog.DefaultURL, cfg.Catalog.URL)
	assert.Zero(t, cfg.Catalog.Timeout)
	assert.Equal(t, 10, cfg.Page.Size)
	assert.Equal(t, "file", cfg.Wishlist.Store)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carfinder.yaml")
	yaml := `
server:
  address: ":9000"
page:
  size: 12
wishlist:
  store: sqlite
  dsn: /tmp/wish.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("CARFINDER_PAGE_SIZE", "20")
	t.Setenv("CARFINDER_REDIS_ADDRESS", "redis:6379")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server.address", ":8080", "")
	require.NoError(t, flags.Parse([]string{"--server.address=:7000"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, 20, cfg.Page.Size)
	assert.Equal(t, "sqlite", cfg.Wishlist.Store)

	sc := cfg.StoreConfig()
	assert.Equal(t, "sqlite", sc.Kind)
	assert.Equal(t, "/tmp/wish.db", sc.DSN)
	assert.Equal(t, "redis:6379", sc.Redis.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err, "a missing .env is not an error")
	assert.Equal(t, 10, cfg.Page.Size)

	// godotenv writes straight into the process environment.
	t.Setenv("CARFINDER_PAGE_SIZE", "")
	require.NoError(t, os.Unsetenv("CARFINDER_PAGE_SIZE"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CARFINDER_PAGE_SIZE=15\n"), 0o644))

	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Page.Size)
}

func TestLoadUnreadableDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o755))

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "load .env")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Catalog:  CatalogConfig{URL: "http://cars"},
			Page:     PageConfig{Size: 10},
			Wishlist: WishlistConfig{Store: "file"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "NoURL", mutate: func(c *Config) { c.Catalog.URL = "" }},
		{name: "ZeroPageSize", mutate: func(c *Config) { c.Page.Size = 0 }},
		{name: "UnknownStore", mutate: func(c *Config) { c.Wishlist.Store = "mongo" }},
		{name: "NegativeRate", mutate: func(c *Config) { c.RateLimit.RPS = -1 }},
	}

	c := valid()
	require.NoError(t, c.Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
