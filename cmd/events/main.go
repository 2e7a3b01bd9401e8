package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lomoval/menu-events/internal/app"
	"github.com/lomoval/menu-events/internal/auth"
	"github.com/lomoval/menu-events/internal/flags"
	"github.com/lomoval/menu-events/internal/logger"
	"github.com/lomoval/menu-events/internal/profile"
	"github.com/lomoval/menu-events/internal/rabbit"
	internalhttp "github.com/lomoval/menu-events/internal/server/http"
	"github.com/lomoval/menu-events/internal/storagebuilder"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	if flag.Arg(0) == "version" {
		printVersion()
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load .env: %v", err)
	}
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
	if config.Auth.Secret == defaultSecret {
		log.Warn("auth secret is not configured, using the default one")
	}
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	stor, err := storagebuilder.New(config.Storage)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	flagStore, err := flags.New(config.Flags)
	if err != nil {
		log.Errorf("failed to start %v", err)
		closeStorage(stor.Close)
		return
	}

	opts := []app.Option{app.WithLocation(location)}
	var feed *rabbit.Provider
	if config.Rabbit.Enabled {
		feed = rabbit.New(config.Rabbit)
		if err := feed.Connect(); err != nil {
			log.Errorf("change feed is disabled: %v", err)
			feed = nil
		} else {
			opts = append(opts, app.WithPublisher(rabbit.NewChangePublisher(feed)))
		}
	}

	var profiles auth.ProfileLookup
	if config.Profile.URL != "" {
		profiles = profile.NewClient(config.Profile)
	}

	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	events := app.New(stor, flagStore, opts...)
	router := internalhttp.NewRouter(events, auth.New(config.Auth, stor, profiles))
	server := internalhttp.NewServer(config.HTTPServer, router)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.Error("failed to stop http server: " + err.Error())
		}
		return nil
	})

	log.Info("events service is running...")

	exitCode := 0
	if err := g.Wait(); err != nil {
		log.Error("failed to start http server: " + err.Error())
		exitCode = 1
	}

	if feed != nil {
		if err := feed.Close(); err != nil {
			log.Errorf("failed to close change feed: %v", err)
		}
	}
	if err := flagStore.Close(); err != nil {
		log.Errorf("failed to close flags store: %v", err)
	}
	closeStorage(stor.Close)
	if exitCode != 0 {
		os.Exit(exitCode) //nolint:gocritic
	}
}

func closeStorage(closeFn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		log.Errorf("failed to close storage: %v", err)
	}
}
