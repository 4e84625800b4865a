package param

import (
	"context"
	"fmt"
	"os"

	"github.com/captionbot/captionbot/internal/log"
	"github.com/samber/do"
)

type EnvFetcher struct{}

func NewEnvFetcher(i *do.Injector) (Fetcher, error) {
	return &EnvFetcher{}, nil
}

func (*EnvFetcher) Fetch(ctx context.Context, name string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("env").Info("fetching variable", "name", name)
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return value, nil
}
