package config

import "os"

type Config struct {
	Addr          string
	DatabasePath  string
	MigrationsDir string
	StaticDir     string
}

func Load() Config {
	return Config{
		Addr:          getEnv("OCHE_ADDR", ":8080"),
		DatabasePath:  getEnv("OCHE_DB_PATH", "oche.db"),
		MigrationsDir: getEnv("OCHE_MIGRATIONS_DIR", "migrations"),
		StaticDir:     getEnv("OCHE_STATIC_DIR", "./static"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
