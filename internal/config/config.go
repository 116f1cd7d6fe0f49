package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tables struct {
	Schema  string
	Product string
	Order   string
	Item    string
}

type Kafka struct {
	Brokers []string
	Topic   string
	Group   string
	Workers int

	Partitions  int
	Replication int
}

// Enabled reports whether order intake from Kafka is configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 && k.Topic != "" }

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Cache struct {
	// Cap bounds the in-process cache. Zero keeps every entry.
	Cap int
	TTL time.Duration
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr string
	// DBType selects the backend: "postgres" or anything else for the
	// in-process store.
	DBType string
	// Metrics names the metrics sink: "prometheus", "inmem" or "none".
	Metrics string

	Pg      Postgres
	Tables  Tables
	Redis   Redis
	Cache   Cache
	Kafka   Kafka
	Breaker Breaker
	Retry   Retry
}

const DBTypePostgres = "postgres"

// Load reads the configuration and exits the process when it is invalid.
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr: envDefault("HTTP_ADDR", ":8081"),
		DBType:   strings.ToLower(envDefault("DB_TYPE", "memory")),
		Metrics:  strings.ToLower(envDefault("METRICS", "prometheus")),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Tables: Tables{
			Schema:  envDefault("DB_SCHEMA", "public"),
			Product: envDefault("TBL_PRODUCT", "products"),
			Order:   envDefault("TBL_ORDER", "orders"),
			Item:    envDefault("TBL_ITEM", "order_items"),
		},

		Redis: Redis{
			Addr:     envDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},

		Cache: Cache{
			Cap: envInt("CACHE_CAP", 0),
			TTL: envDurationMS("CACHE_TTL", 360*time.Second),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(os.Getenv("KAFKA_TOPIC")),
			Group:   envDefault("KAFKA_GROUP", "catalog-orders"),
			Workers: envInt("KAFKA_WORKERS", 10),

			Partitions:  envInt("KAFKA_PARTITIONS", 3),
			Replication: envInt("KAFKA_REPLICATION", 1),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 5),
			Base:         envDurationMS("RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 5*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBType == DBTypePostgres {
		var missing []string
		req := []struct{ key, val string }{
			{"PG_HOST", c.Pg.Host},
			{"PG_DB", c.Pg.DB},
			{"PG_USER", c.Pg.User},
			{"PG_PASSWORD", c.Pg.Password},
		}
		for _, r := range req {
			if r.val == "" {
				missing = append(missing, r.key)
			}
		}
		if len(missing) > 0 {
			return &missingEnvError{Keys: missing}
		}
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return &missingEnvError{Keys: []string{"KAFKA_TOPIC"}}
	}

	if c.Cache.Cap < 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 0", c.Cache.Cap)
		c.Cache.Cap = 0
	}
	if c.Cache.TTL <= 0 {
		log.Printf("CACHE_TTL is %v, adjusting to 360s", c.Cache.TTL)
		c.Cache.TTL = 360 * time.Second
	}
	if c.Kafka.Workers <= 0 {
		log.Printf("KAFKA_WORKERS is %d, adjusting to 1", c.Kafka.Workers)
		c.Kafka.Workers = 1
	}
	if c.Kafka.Partitions <= 0 {
		log.Printf("KAFKA_PARTITIONS is %d, adjusting to 1", c.Kafka.Partitions)
		c.Kafka.Partitions = 1
	}
	if c.Kafka.Replication <= 0 {
		log.Printf("KAFKA_REPLICATION is %d, adjusting to 1", c.Kafka.Replication)
		c.Kafka.Replication = 1
	}
	if c.Retry.Attempts < 0 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 0", c.Retry.Attempts)
		c.Retry.Attempts = 0
	}
	if c.Retry.Base <= 0 {
		log.Printf("RETRY_BASE is %v, adjusting to 100ms", c.Retry.Base)
		c.Retry.Base = 100 * time.Millisecond
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
		c.Retry.Max = c.Retry.Base
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	// If it looks like a duration with units, try ParseDuration first.
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	// Otherwise treat as milliseconds.
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
