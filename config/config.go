package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KincaidYang/whoisparser/logger"
	"github.com/KincaidYang/whoisparser/server_lists"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// discardLogger silences the Redis client's internal logging.
type discardLogger struct{}

func (l *discardLogger) Printf(ctx context.Context, format string, v ...interface{}) {}

var (
	// Version information, read from the build info.
	Version   string
	BuildTime string
	GitCommit string

	RedisClient *redis.Client
	// CacheManager is the record cache, Redis first with memory fallback.
	CacheManager    utils.Cache
	CacheExpiration time.Duration
	// Wg tracks in-flight lookups for graceful shutdown.
	Wg   sync.WaitGroup
	Port int
	// RateLimit bounds concurrent lookups through ConcurrencyLimiter.
	RateLimit          int
	ConcurrencyLimiter chan struct{}
	RequestsPerMinute  int
	Burst              int
	WhoisTimeout       time.Duration

	RequireRedis        bool
	MemoryMaxSize       int
	MemoryCleanInterval time.Duration
)

// defaultFiles are tried in order when Load gets no path.
var defaultFiles = []string{"config.yaml", "config.yml", "config.json"}

// Load reads the configuration file, then .env and WHOIS_* environment
// overrides, then fills defaults. A missing default file is not an error.
func Load(path string) (*Config, error) {
	var config Config

	if err := loadConfigFromFile(&config, path); err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	overrideConfigWithEnv(&config)
	applyDefaults(&config)
	return &config, nil
}

// Init applies config to the package-level runtime settings and builds
// the cache.
func Init(config *Config) error {
	initVersionInfo()

	CacheExpiration = time.Duration(config.CacheExpiration) * time.Second
	Port = config.Port
	RateLimit = config.RateLimit
	ConcurrencyLimiter = make(chan struct{}, RateLimit)
	RequestsPerMinute = config.RequestsPerMinute
	Burst = config.Burst
	WhoisTimeout = time.Duration(config.Whois.Timeout) * time.Second

	RequireRedis = config.Cache.RequireRedis
	MemoryMaxSize = config.Cache.MemoryMaxSize
	MemoryCleanInterval = time.Duration(config.Cache.MemoryCleanInterval) * time.Second

	if len(config.Whois.Servers) > 0 {
		server_lists.Override(config.Whois.Servers)
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:            config.Redis.Addr,
		Password:        config.Redis.Password,
		DB:              config.Redis.DB,
		PoolSize:        10,
		MaxRetries:      1,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     2 * time.Second,
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    2 * time.Second,
		PoolTimeout:     2 * time.Second,
	})
	redis.SetLogger(&discardLogger{})

	return initializeCacheManager()
}

// applyDefaults fills every unset setting.
func applyDefaults(config *Config) {
	if config.Redis.Addr == "" {
		config.Redis.Addr = "localhost:6379"
	}
	if config.CacheExpiration == 0 {
		config.CacheExpiration = 3600
	}
	if config.Port == 0 {
		config.Port = 8043
	}
	if config.RateLimit == 0 {
		config.RateLimit = 50
	}
	if config.RequestsPerMinute > 0 && config.Burst == 0 {
		config.Burst = config.RequestsPerMinute
	}
	if config.Cache.MemoryMaxSize == 0 {
		config.Cache.MemoryMaxSize = 10000
	}
	if config.Cache.MemoryCleanInterval == 0 {
		config.Cache.MemoryCleanInterval = 300
	}
	if config.Whois.Timeout == 0 {
		config.Whois.Timeout = 10
	}
	if config.Log.Env == "" {
		config.Log.Env = "production"
	}
}

func initializeCacheManager() error {
	log := logger.Module("config")

	redisCache := utils.NewRedisCache(RedisClient)
	memoryCache := utils.NewMemoryCache(MemoryMaxSize, MemoryCleanInterval)
	CacheManager = utils.NewFallbackCache(redisCache, memoryCache)

	if redisCache.IsHealthy() {
		log.Info("redis cache initialized")
	} else {
		log.Warn("redis unavailable, using memory cache as fallback")
		if RequireRedis {
			return errors.New("redis is required but unavailable; set cache.requireRedis to false to allow fallback")
		}
	}

	log.Infow("cache configured", "memoryMaxSize", MemoryMaxSize, "cleanInterval", MemoryCleanInterval)
	return nil
}

func loadConfigFromFile(config *Config, path string) error {
	if path == "" {
		for _, candidate := range defaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil
		}
	}

	configFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open configuration file: %w", err)
	}
	defer configFile.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(configFile).Decode(config); err != nil {
			return fmt.Errorf("decode YAML configuration %s: %w", path, err)
		}
	case ".json":
		if err := json.NewDecoder(configFile).Decode(config); err != nil {
			return fmt.Errorf("decode JSON configuration %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}
	return nil
}

func envInt(name string, target *int) {
	if value := os.Getenv(name); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			*target = n
		}
	}
}

func overrideConfigWithEnv(config *Config) {
	if redisAddr := os.Getenv("WHOIS_REDIS_ADDR"); redisAddr != "" {
		config.Redis.Addr = redisAddr
	}
	if redisPassword := os.Getenv("WHOIS_REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	envInt("WHOIS_REDIS_DB", &config.Redis.DB)
	envInt("WHOIS_CACHE_EXPIRATION", &config.CacheExpiration)
	envInt("WHOIS_PORT", &config.Port)
	envInt("WHOIS_RATE_LIMIT", &config.RateLimit)
	envInt("WHOIS_REQUESTS_PER_MINUTE", &config.RequestsPerMinute)
	envInt("WHOIS_BURST", &config.Burst)
	envInt("WHOIS_MEMORY_MAX_SIZE", &config.Cache.MemoryMaxSize)
	envInt("WHOIS_MEMORY_CLEAN_INTERVAL", &config.Cache.MemoryCleanInterval)
	envInt("WHOIS_QUERY_TIMEOUT", &config.Whois.Timeout)

	if requireRedis := os.Getenv("WHOIS_REQUIRE_REDIS"); requireRedis != "" {
		config.Cache.RequireRedis = requireRedis == "true" || requireRedis == "1"
	}
	if env := os.Getenv("WHOIS_LOG_ENV"); env != "" {
		config.Log.Env = env
	}
	if file := os.Getenv("WHOIS_LOG_FILE"); file != "" {
		config.Log.File = file
	}
	if level := os.Getenv("WHOIS_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}

// initVersionInfo reads version information from the Go build info.
func initVersionInfo() {
	Version = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				GitCommit = setting.Value[:7]
			} else {
				GitCommit = setting.Value
			}
		case "vcs.time":
			BuildTime = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				GitCommit += "-dirty"
			}
		}
	}
}
