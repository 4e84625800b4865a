package inject

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/captionbot/captionbot/internal/caption"
	"github.com/captionbot/captionbot/internal/handler"
	"github.com/captionbot/captionbot/internal/log"
	"github.com/captionbot/captionbot/internal/param"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Setup wires the whole service. Configuration is resolved here, once, at
// startup; nothing reads the environment after this returns.
func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Info(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	// Parameter Store when a parameter path is configured, plain
	// environment variables otherwise. Providers are lazy, so the env
	// path never touches AWS.
	if keyParam := os.Getenv("GEMINI_KEY_PARAM"); keyParam != "" {
		do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
		do.ProvideNamed[string](injector, "gemini_key", func(i *do.Injector) (string, error) {
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, keyParam)
		})
	} else {
		do.Provide[param.Fetcher](injector, param.NewEnvFetcher)
		do.ProvideNamed[string](injector, "gemini_key", func(i *do.Injector) (string, error) {
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, "GOOGLE_API_KEY")
		})
	}
	do.ProvideNamedValue[string](injector, "gemini_model",
		lo.Ternary(os.Getenv("GEMINI_MODEL") != "", os.Getenv("GEMINI_MODEL"), "gemini-1.5-flash"))
	do.ProvideNamedValue[string](injector, "port",
		lo.Ternary(os.Getenv("PORT") != "", os.Getenv("PORT"), "5000"))

	do.Provide[caption.Generator](injector, caption.NewGeminiGenerator)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
