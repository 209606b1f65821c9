package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	Storage     string // mysql|memory
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	BackendURL  string
	FrontendURL string

	JWTSecret string
	JWTTTL    time.Duration
	SubmitRPS int

	PublicPageSize int
	AdminPageSize  int
	// Denominator the admin dashboard shows the average against.
	RatingScale int
	// Notes shown in the public distribution, in display order.
	PublicBuckets []int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		Storage:        env("STORAGE", "mysql"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/clientvoice?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		BackendURL:     env("BACKEND_URL", "http://localhost:8080"),
		FrontendURL:    env("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:      env("JWT_SECRET", ""),
		JWTTTL:         time.Duration(atoi("JWT_TTL_MINUTES", 24*60)) * time.Minute,
		SubmitRPS:      atoi("SUBMIT_RPS", 5),
		PublicPageSize: atoi("PUBLIC_PAGE_SIZE", 4),
		AdminPageSize:  atoi("ADMIN_PAGE_SIZE", 5),
		RatingScale:    atoi("KPI_RATING_SCALE", 5),
		PublicBuckets:  ints(env("PUBLIC_DISTRIBUTION_BUCKETS", "3,2,1")),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; admin tokens use an insecure dev secret")
		c.JWTSecret = "dev-secret"
	}
	if len(c.PublicBuckets) == 0 {
		c.PublicBuckets = []int{3, 2, 1}
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ints parses a comma separated list, skipping malformed entries.
func ints(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
