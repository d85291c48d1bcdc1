package config

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_URI", "MONGO_URI", "STORE_DATABASE", "STORE_COLLECTION", "PORT", "HOST", "ALLOW_ORIGINS", "MAX_UPLOAD_MB", "REPORT_DIR"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, DefaultStoreURI, cfg.StoreURI)
	assert.Equal(t, "portalDB", cfg.StoreDatabase)
	assert.Equal(t, "portals", cfg.StoreCollection)
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 64, cfg.MaxUploadMB)
	assert.NotEmpty(t, cfg.ReportDir)
}

func TestLoad_MongoURIFallback(t *testing.T) {
	t.Setenv("STORE_URI", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	assert.Equal(t, "mongodb://db:27017", Load().StoreURI)

	t.Setenv("STORE_URI", "postgres://u:p@pg/portal")
	assert.Equal(t, "postgres://u:p@pg/portal", Load().StoreURI)
}

func TestSetupLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	SetupLogger(Config{LogLevel: "warn", LogFile: filepath.Join(t.TempDir(), "logs", "x.log")})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetupLogger(Config{LogLevel: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
