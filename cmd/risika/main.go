package main

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"os/signal"
	"time"

	cli "github.com/jawher/mow.cli"
	"go.uber.org/zap"

	"thde.io/risika"
)

func main() {
	app := cli.App("risika", "Query company data from the Risika API")

	token := app.String(cli.StringOpt{
		Name:   "token",
		Desc:   "Refresh token used to obtain access tokens",
		EnvVar: "RISIKA_REFRESH_TOKEN",
	})
	apiVersion := app.String(cli.StringOpt{
		Name:   "api-version",
		Value:  "v1.2",
		Desc:   "API version path segment",
		EnvVar: "RISIKA_API_VERSION",
	})
	lang := app.String(cli.StringOpt{
		Name:   "lang",
		Value:  "en-UK",
		Desc:   "Accept-Language sent with every request",
		EnvVar: "RISIKA_LANG",
	})
	locale := app.String(cli.StringOpt{
		Name:   "l locale",
		Value:  string(risika.LocaleDK),
		Desc:   "Company register to query (dk, se, no)",
		EnvVar: "RISIKA_LOCALE",
	})
	baseURL := app.String(cli.StringOpt{
		Name:   "base-url",
		Value:  risika.ProductionURL,
		Desc:   "API base URL",
		EnvVar: "RISIKA_BASE_URL",
	})
	timeout := app.Int(cli.IntOpt{
		Name:   "timeout",
		Value:  30,
		Desc:   "HTTP timeout in seconds",
		EnvVar: "RISIKA_TIMEOUT",
	})
	verbose := app.Bool(cli.BoolOpt{
		Name:  "v verbose",
		Value: false,
		Desc:  "Log requests and token refreshes",
	})

	r := &runner{out: os.Stdout}

	app.Before = func() {
		r.logger = newLogger(*verbose)

		if *token == "" {
			r.logger.Error("missing refresh token, set --token or RISIKA_REFRESH_TOKEN")
			cli.Exit(2)
		}

		base, err := url.Parse(*baseURL)
		if err != nil {
			r.logger.Error("invalid base URL", zap.String("base_url", *baseURL), zap.Error(err))
			cli.Exit(2)
		}

		r.locale = risika.Locale(*locale)
		r.client = risika.New(*token, *apiVersion, *lang,
			risika.WithBaseURL(base),
			risika.WithTimeout(time.Duration(*timeout)*time.Second),
			risika.WithLogger(r.logger),
		)
	}

	registerCommands(app, r)

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// runner holds the state shared by all commands.
type runner struct {
	client *risika.Client
	locale risika.Locale
	logger *zap.Logger
	out    io.Writer
}

// run executes call and writes its result to r.out as indented JSON.
func (r *runner) run(call func(ctx context.Context) (any, error)) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := call(ctx)
	if err != nil {
		r.logger.Error("request failed", zap.Error(err))
		_ = r.logger.Sync()
		cli.Exit(1)
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		r.logger.Error("encode result", zap.Error(err))
		cli.Exit(1)
	}
}
