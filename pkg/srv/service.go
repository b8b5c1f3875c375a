package srv

import (
	"context"
	"time"

	"github.com/sandevgo/journal/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in
// reverse registration order so closers registered first run last.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
