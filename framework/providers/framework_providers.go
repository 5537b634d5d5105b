package providers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/config"
	"github.com/km-arc/sfx-di/framework/container"
	gohttp "github.com/km-arc/sfx-di/framework/http"
	"github.com/km-arc/sfx-di/framework/prompt"
	"github.com/km-arc/sfx-di/framework/prompt/connectcluster"
	"github.com/km-arc/sfx-di/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
//
// When Config is nil the configuration is loaded from EnvFiles on first use.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	var err error
	if p.Config != nil {
		err = app.Instance("config", p.Config)
	} else {
		envFiles := p.EnvFiles
		err = app.Singleton("config", func() *config.Config {
			return config.Load(envFiles...)
		}, nil)
	}
	if err != nil {
		return err
	}
	return app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound abstracts:
//   - "logger"  → *logrus.Logger
//   - "log"     → alias of "logger"
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *log.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	logger := p.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	if err := app.Instance("logger", logger); err != nil {
		return err
	}
	return app.Alias("logger", "log")
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and, on Boot, the
// framework routes:
//
//	GET  /bindings
//	POST /prompt/connect-cluster
//	POST /prompt/exit
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Singleton("router", routing.New, []string{"logger"})
}

func (p *RoutingServiceProvider) Boot(app *container.Container) error {
	router, err := container.Resolve[*routing.Router](app, "router")
	if err != nil {
		return err
	}
	cc, err := container.Resolve[*connectcluster.Prompt](app, connectcluster.Key)
	if err != nil {
		return err
	}

	router.Get("/bindings", func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).Success(app.Bindings())
	})
	connectcluster.NewHandler(cc).Routes(router)
	return nil
}

// ── PromptServiceProvider ─────────────────────────────────────────────────────

// PromptServiceProvider registers the prompt session and the connect-cluster
// prompt. It is deferred: nothing is registered until one of its keys is
// first resolved.
//
// Bound abstracts:
//   - "prompt.context"         → *prompt.Session
//   - "prompt.connect-cluster" → *connectcluster.Prompt
type PromptServiceProvider struct {
	container.BaseProvider
}

func (p *PromptServiceProvider) Register(app *container.Container) error {
	if err := app.Singleton(connectcluster.ContextKey, prompt.NewSession, nil); err != nil {
		return err
	}
	return app.Singleton(connectcluster.Key, connectcluster.NewPrompt, connectcluster.Injects)
}

func (p *PromptServiceProvider) Provides() []string {
	return []string{connectcluster.ContextKey, connectcluster.Key}
}

func (p *PromptServiceProvider) IsDeferred() bool { return true }
