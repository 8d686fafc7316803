// Command pelotond runs the cycling data feed: the refresh worker pulling
// the season payload off the remote config channel, plus the read-only
// HTTP API over the latest snapshot.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"peloton/internal/adapters/remoteconfig"
	"peloton/internal/platform/config"
	"peloton/internal/platform/logger"
	"peloton/internal/services/api"
	feedsvc "peloton/internal/services/feed/service"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	l := logger.Get()

	cache, err := remoteconfig.OpenCache(root.Prefix("CACHE_").MayString("PATH", "peloton.db"))
	if err != nil {
		l.Panic().Err(err).Msg("open payload cache failed")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close payload cache")
		}
	}()

	remoteCfg := root.Prefix("REMOTE_")
	remote, err := remoteconfig.NewClient(remoteconfig.Options{
		BaseURL:   remoteCfg.MustURL("BASE_URL").String(),
		Namespace: remoteCfg.MayString("NAMESPACE", ""),
		Timeout:   remoteCfg.MayDuration("TIMEOUT", 0),
	}, cache)
	if err != nil {
		l.Panic().Err(err).Msg("remoteconfig client failed")
	}

	feedCfg := root.Prefix("FEED_")
	feed, err := feedsvc.New(remote, feedsvc.Config{
		Key:              feedCfg.MayString("KEY", ""),
		MinFetchInterval: feedCfg.MayDuration("MIN_FETCH_INTERVAL", 0),
		RefreshEvery:     feedCfg.MayDuration("REFRESH_EVERY", 0),
	})
	if err != nil {
		l.Panic().Err(err).Msg("feed service failed")
	}

	srv := api.NewServer(root.Prefix("API_").MayString("ADDR", ":4000"), feed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return feed.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil && err != context.Canceled {
		l.Fatal().Err(err).Msg("pelotond stopped")
	}
	l.Info().Msg("pelotond shut down")
}
