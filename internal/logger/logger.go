package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Level  string
	Format string
}

func PrepareLogger(config Config) error {
	level, err := log.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("failed to parse log level %q: %w", config.Level, err)
	}

	switch strings.ToLower(config.Format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", config.Format)
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return nil
}
