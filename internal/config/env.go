package config

// Environment variable names read by Load.
const (
	EnvAppEnv          = "CATALOG_APP_ENV"
	EnvPort            = "CATALOG_APP_PORT"
	EnvDBDSN           = "CATALOG_DB_DSN"
	EnvRedisURL        = "CATALOG_REDIS_URL"
	EnvRedisCacheTTL   = "CATALOG_REDIS_CACHE_TTL"
	EnvSessionIdleTTL  = "CATALOG_SESSION_IDLE_TTL"
	EnvShopCurrency    = "CATALOG_SHOP_CURRENCY"
	EnvShopPhone       = "CATALOG_SHOP_WHATSAPP_PHONE"
	EnvShopSubtotals   = "CATALOG_SHOP_MESSAGE_SUBTOTALS"
	EnvShopPlaceholder = "CATALOG_SHOP_PLACEHOLDER_IMAGE"
)
