package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"frontdesk-backend/models"
)

// AppConfig is read once at startup and handed to whatever needs it.
type AppConfig struct {
	Port        string
	CorsOrigins []string
	PublicDir   string
	Location    *time.Location

	DBDriver   string
	SQLitePath string
	DBDebug    bool

	RoomNumbers   []string
	DefaultPrices models.PriceTable

	SnapshotInterval time.Duration
	UploadLimit      int64

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	LogLevel string
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseCorsOrigins(raw string) []string {
	origins := splitList(raw)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// RoomLayout generates room numbers floor*100+index, skipping the listed indexes.
func RoomLayout(floors []int, perFloor int, skip []int) []string {
	skipped := make(map[int]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	numbers := make([]string, 0, len(floors)*perFloor)
	for _, f := range floors {
		for i := 1; i <= perFloor; i++ {
			if skipped[i] {
				continue
			}
			numbers = append(numbers, strconv.Itoa(f*100+i))
		}
	}
	return numbers
}

func parseInts(key, raw string) ([]int, error) {
	var out []int
	for _, p := range splitList(raw) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func roomNumbers() ([]string, error) {
	if explicit := splitList(os.Getenv("ROOM_NUMBERS")); len(explicit) > 0 {
		return explicit, nil
	}
	floors, err := parseInts("ROOM_FLOORS", envOrDefault("ROOM_FLOORS", "2,3,4"))
	if err != nil {
		return nil, err
	}
	perFloor, err := envInt("ROOMS_PER_FLOOR", 7)
	if err != nil {
		return nil, err
	}
	skip, err := parseInts("ROOM_SKIP_INDEXES", envOrDefault("ROOM_SKIP_INDEXES", "5"))
	if err != nil {
		return nil, err
	}
	return RoomLayout(floors, int(perFloor), skip), nil
}

// Load builds the configuration from the environment. Call godotenv first if
// a .env file should be honoured.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:          envOrDefault("PORT", "10000"),
		CorsOrigins:   parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		PublicDir:     envOrDefault("PUBLIC_DIR", "./public"),
		DBDriver:      strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		SQLitePath:    envOrDefault("SQLITE_PATH", "./frontdesk.db"),
		DBDebug:       strings.EqualFold(envOrDefault("DB_DEBUG", "false"), "true"),
		RedisAddress:  strings.TrimSpace(os.Getenv("REDIS_ADDRESS")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return cfg, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", cfg.DBDriver)
	}

	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "Local"))
	if err != nil {
		return cfg, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.RoomNumbers, err = roomNumbers(); err != nil {
		return cfg, err
	}

	first, err := envInt("PRICE_FIRST_HOUR", 90000)
	if err != nil {
		return cfg, err
	}
	extra, err := envInt("PRICE_EXTRA_HOUR", 20000)
	if err != nil {
		return cfg, err
	}
	overnight, err := envInt("PRICE_OVERNIGHT", 200000)
	if err != nil {
		return cfg, err
	}
	if first < 0 || extra < 0 || overnight < 0 {
		return cfg, fmt.Errorf("default prices must be non-negative")
	}
	cfg.DefaultPrices = models.PriceTable{FirstHour: first, ExtraHour: extra, Overnight: overnight}

	cfg.SnapshotInterval, err = time.ParseDuration(envOrDefault("SNAPSHOT_INTERVAL", "10m"))
	if err != nil {
		return cfg, fmt.Errorf("SNAPSHOT_INTERVAL: %w", err)
	}

	limitMB, err := envInt("UPLOAD_LIMIT_MB", 5)
	if err != nil {
		return cfg, err
	}
	cfg.UploadLimit = limitMB << 20

	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return cfg, err
	}
	cfg.RedisDB = int(redisDB)

	return cfg, nil
}
