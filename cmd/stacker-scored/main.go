package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/stacker/persist"
	"github.com/plus3/stacker/scoreserver"
)

func main() {
	addr := flag.String("addr", ":5808", "Listen address.")
	dataPath := flag.String("data", "scores.yaml", "YAML file the scores are kept in.")
	jsonLogs := flag.Bool("json", false, "Log as JSON instead of text.")
	flag.Parse()

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)

	store, err := persist.OpenFile(*dataPath)
	if err != nil {
		logger.Error("open store", "err", err)
		os.Exit(1)
	}

	srv := scoreserver.New(store, logger).HTTPServer(*addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("listening", "addr", *addr, "data", *dataPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
