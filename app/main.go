package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/gilbertbrandow/http-server/app/actions"
	"github.com/gilbertbrandow/http-server/app/config"
	"github.com/gilbertbrandow/http-server/app/reslock"
	"github.com/gilbertbrandow/http-server/app/server"
	"github.com/gilbertbrandow/http-server/app/types"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}
	logger.Info().
		Str("address_family", cfg.AddressFamily).
		Int("port", cfg.Port).
		Int("backlog", cfg.Backlog).
		Msg("configuration loaded")

	locks := reslock.New(logger)
	defer locks.Teardown()

	gallery := actions.New(".", locks, logger)

	// Ordering is significant: exact paths sit in front of the broad
	// image prefix entry, and the first match wins.
	routes := []types.Route{
		{Method: types.Get, Pattern: "/", Action: gallery.IndexPage},
		{Method: types.Get, Pattern: "/frida", Action: gallery.FridaPage},
		{Method: types.Get, Pattern: "/jean", Action: gallery.JeanPage},
		{Method: types.Get, Pattern: "/vincent", Action: gallery.VincentPage},
		{Method: types.Get, Pattern: "/favicon.ico", Action: gallery.Favicon},
		{Method: types.Get, Pattern: "/github", Action: gallery.Repository},
		{Method: types.Get, Pattern: "^/public/images/", Action: gallery.Image},
		{Method: types.Post, Pattern: "/comments", Action: gallery.CreateComment},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.ListenAddr(), routes, logger)
	if err := srv.Serve(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
