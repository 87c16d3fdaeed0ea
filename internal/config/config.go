package config

import (
	"log"
	"os"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	LogFile    string
	CartStore  string // memory | file | redis
	CartDir    string // state dir for the file cart store
	RedisAddr  string
	CatalogURL string // when set, the catalog of record is remote
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	cfg := Config{
		Port:       getenv("PORT", "8080"),
		DBDSN:      getenv("DB_DSN", "sweetnirwana.db"), // sqlite file in project root
		MediaDir:   getenv("MEDIA_DIR", "./media"),
		LogFile:    getenv("LOG_FILE", "./sweetnirwana.log"),
		CartStore:  getenv("CART_STORE", "file"),
		CartDir:    getenv("CART_STATE_DIR", "./carts"),
		RedisAddr:  getenv("REDIS_ADDR", "localhost:6379"),
		CatalogURL: os.Getenv("CATALOG_URL"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s CART_STORE=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.CartStore)
	return cfg
}
