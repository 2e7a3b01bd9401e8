package main

import (
	"fmt"
	"strings"

	"github.com/lomoval/menu-events/internal/logger"
	"github.com/lomoval/menu-events/internal/rabbit"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type Config struct {
	Logger logger.Config
	Rabbit rabbit.Config
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	v := viper.New()
	v.SetConfigFile(configFile)

	v.SetDefault("rabbit.host", "127.0.0.1")
	v.SetDefault("rabbit.port", "5672")
	v.SetDefault("rabbit.user", "user")
	v.SetDefault("rabbit.password", "pass")
	v.SetDefault("rabbit.queue", "events.changes")
	v.SetDefault("logger.level", "INFO")

	err := v.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	for _, key := range v.AllKeys() {
		env := v.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			if err := v.BindEnv(key, env[len(envConfigPrefix):]); err != nil {
				return config, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
