package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultStoreURI   = "mongodb://localhost:27017"
	DefaultHeaderRow  = 2
	DefaultSampleSize = 5
	DefaultDateLayout = "dd/MM/yyyy"
)

// Config collects everything the importer and the upload server read from the
// environment. CLI flags override the import-related fields afterwards.
type Config struct {
	StoreURI        string
	StoreDatabase   string
	StoreCollection string

	LogLevel string
	LogFile  string

	ReportDir   string
	MetricsFile string
	AliasesFile string

	Host         string
	Port         int
	AllowOrigins []string
	MaxUploadMB  int
}

func Load() Config {
	// .env is optional; real environment wins because godotenv never overrides.
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		StoreURI:        getenv("STORE_URI", getenv("MONGO_URI", DefaultStoreURI)),
		StoreDatabase:   getenv("STORE_DATABASE", "portalDB"),
		StoreCollection: getenv("STORE_COLLECTION", "portals"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFile:         getenv("LOG_FILE", "logs/portal-import.log"),
		ReportDir:       getenv("REPORT_DIR", executableDir()),
		MetricsFile:     os.Getenv("METRICS_FILE"),
		AliasesFile:     os.Getenv("ALIASES_FILE"),
		Host:            getenv("HOST", "127.0.0.1"),
		Port:            port,
		AllowOrigins:    origins,
		MaxUploadMB:     mb,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// reports live next to the binary unless REPORT_DIR says otherwise
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
