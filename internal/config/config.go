package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port              string
	DBDSN             string
	MediaDir          string
	LogFile           string
	GeocoderURL       string
	GeocoderUserAgent string
	MediaAPIURL       string
	MaxCoordDistKm    float64
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "nestlist.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./nestlist.log"
	}
	geoURL := os.Getenv("GEOCODER_URL")
	if geoURL == "" {
		geoURL = "https://nominatim.openstreetmap.org/search"
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	geoUA := os.Getenv("GEOCODER_USER_AGENT")
	if geoUA == "" {
		geoUA = "nestlist/1.0"
	}
	mediaAPI := os.Getenv("MEDIA_API_URL")

	maxKm := 3.0
	if v := os.Getenv("MAX_COORD_DISTANCE_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			maxKm = f
		}
	}

	cfg := Config{
		Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile,
		GeocoderURL: geoURL, GeocoderUserAgent: geoUA,
		MediaAPIURL: mediaAPI, MaxCoordDistKm: maxKm,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s GEOCODER_URL=%s MAX_KM=%.1f",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.GeocoderURL, cfg.MaxCoordDistKm)
	return cfg
}
