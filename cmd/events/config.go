package main

import (
	"fmt"
	"strings"

	"github.com/lomoval/menu-events/internal/auth"
	"github.com/lomoval/menu-events/internal/flags"
	"github.com/lomoval/menu-events/internal/logger"
	"github.com/lomoval/menu-events/internal/profile"
	"github.com/lomoval/menu-events/internal/rabbit"
	internalhttp "github.com/lomoval/menu-events/internal/server/http"
	"github.com/lomoval/menu-events/internal/storagebuilder"
	"github.com/spf13/viper"
)

const (
	envConfigPrefix = "$env:"
	defaultSecret   = "87654321"
)

type Config struct {
	HTTPServer internalhttp.Config
	Logger     logger.Config
	Storage    storagebuilder.Config
	Flags      flags.Config
	Auth       auth.Config
	Profile    profile.Config
	Rabbit     rabbit.Config
	Timezone   string
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	v := viper.New()
	v.SetConfigFile(configFile)

	v.SetDefault("httpServer.host", "127.0.0.1")
	v.SetDefault("httpServer.port", "8005")
	v.SetDefault("httpServer.readTimeout", "10s")
	v.SetDefault("httpServer.writeTimeout", "10s")
	v.SetDefault("logger.level", "WARN")
	v.SetDefault("logger.format", "text")
	v.SetDefault("storage.storageType", "memory")
	v.SetDefault("storage.mongo.database", "events")
	v.SetDefault("flags.type", "memory")
	v.SetDefault("flags.redis.prefix", "events:")
	v.SetDefault("auth.secret", defaultSecret)
	v.SetDefault("auth.refreshStaff", false)
	v.SetDefault("profile.timeout", "5s")
	v.SetDefault("rabbit.enabled", false)
	v.SetDefault("rabbit.host", "127.0.0.1")
	v.SetDefault("rabbit.port", "5672")
	v.SetDefault("rabbit.queue", "events.changes")
	v.SetDefault("timezone", "UTC")

	err := v.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := v.AllKeys()
	for _, key := range keys {
		env := v.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := v.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
