package logging

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"stock-backend/internal/config"
)

// Setup configures the process-wide logrus logger from config
func Setup(cfg *config.Config) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Log.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Printf("[Config] Unknown log level %q, using info", cfg.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
