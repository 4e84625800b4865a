package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/captionbot/captionbot/internal/handler"
	"github.com/captionbot/captionbot/internal/inject"
	"github.com/captionbot/captionbot/internal/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	logCtx := log.NewContext(context.Background(), log.New(os.Stderr))
	logger := log.FromContextOrDiscard(logCtx)

	ctx, stop := signal.NotifyContext(logCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := inject.Setup(ctx)
	h := do.MustInvoke[*handler.Handler](injector)
	port := do.MustInvokeNamed[string](injector, "port")

	server := &http.Server{
		Addr:    ":" + port,
		Handler: h.Router(),
		// Requests keep the logger but are not torn down by the signal
		// before Shutdown drains them.
		BaseContext: func(net.Listener) context.Context { return logCtx },
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server starting", "port", port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return injector.Shutdown()
	})
	if err := group.Wait(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
