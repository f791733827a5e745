// Package config manages application configuration for the sign-up API.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file in the working directory:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, timeouts, CORS origins, static frontend directory
//   - LogConfig: zap level and encoding
//   - StoreConfig: roster backend (memory, redis, surrealdb) and catalog file
//   - RedisConfig / DatabaseConfig: backend connection settings
//   - RateLimitConfig: per-client token bucket
//
// # Environment Variables
//
//	SERVER_PORT             - HTTP server port (default: 8080)
//	SERVER_ENV              - development, production or test
//	SERVER_SHUTDOWN_TIMEOUT - graceful shutdown budget (default: 30s)
//	CORS_ALLOWED_ORIGINS    - comma separated, "*" allows any origin
//	STATIC_DIR              - serve a frontend under /static/ when set
//	LOG_LEVEL / LOG_FORMAT  - debug|info|warn|error, json|console
//	STORE_DRIVER            - memory (default), redis or surrealdb
//	ACTIVITIES_FILE         - YAML catalog replacing the built-in one
//	REDIS_ADDR              - Redis address (default: localhost:6379)
//	REDIS_KEY_PREFIX        - key namespace (default: signup:)
//	DB_HOST / DB_PORT       - SurrealDB endpoint
//	RATE_LIMIT_RATE         - requests per window per client
package config
