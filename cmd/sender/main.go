package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lomoval/menu-events/internal/logger"
	"github.com/lomoval/menu-events/internal/rabbit"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/sender_config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	r := rabbit.New(config.Rabbit)
	if err := r.Connect(); err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	defer r.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	log.Infof("listening for event changes on %s", config.Rabbit.Queue)
	err = r.Consume(ctx, func(msg amqp.Delivery) {
		m, err := rabbit.ParseMessage(msg.Body)
		if err != nil {
			log.Errorf("skipping message: %v", err)
			return
		}
		log.WithField("action", m.Action).WithField("eventId", m.EventID).
			WithField("userId", m.UserID).WithField("start", m.Start).
			Infof("event %q %s", m.Description, m.Action)
	})
	if err != nil {
		log.Errorf("failed to consume changes: %v", err)
	}
}
