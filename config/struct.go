package config

// Config represents the configuration for the application.
type Config struct {
	// Redis holds the connection settings of the record cache.
	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"redis" yaml:"redis"`
	// CacheExpiration is the lifetime of a cached record, in seconds.
	CacheExpiration int `json:"cacheExpiration" yaml:"cacheExpiration"`
	// Port is the port number for the server.
	Port int `json:"port" yaml:"port"`
	// RateLimit is the number of lookups served concurrently.
	RateLimit int `json:"rateLimit" yaml:"rateLimit"`
	// RequestsPerMinute and Burst bound each client; 0 disables the limit.
	RequestsPerMinute int `json:"requestsPerMinute" yaml:"requestsPerMinute"`
	Burst             int `json:"burst" yaml:"burst"`

	Cache struct {
		RequireRedis        bool `json:"requireRedis" yaml:"requireRedis"`
		MemoryMaxSize       int  `json:"memoryMaxSize" yaml:"memoryMaxSize"`
		MemoryCleanInterval int  `json:"memoryCleanInterval" yaml:"memoryCleanInterval"` // seconds
	} `json:"cache" yaml:"cache"`

	Whois struct {
		// Timeout of one port-43 query, in seconds.
		Timeout int `json:"timeout" yaml:"timeout"`
		// Servers adds or replaces server templates per TLD.
		Servers map[string][]string `json:"servers" yaml:"servers"`
	} `json:"whois" yaml:"whois"`

	Log struct {
		Env   string `json:"env" yaml:"env"`
		File  string `json:"file" yaml:"file"`
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}
