package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	CatalogPath string
}

func Load() Config {
	return Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CatalogPath: getenv("CATALOG_PATH", "./data/products.json"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
