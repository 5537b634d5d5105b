package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/config"
	"github.com/km-arc/sfx-di/framework/container"
	"github.com/km-arc/sfx-di/framework/logging"
	"github.com/km-arc/sfx-di/framework/prompt"
	"github.com/km-arc/sfx-di/framework/prompt/connectcluster"
	"github.com/km-arc/sfx-di/framework/providers"
	"github.com/km-arc/sfx-di/framework/routing"
)

const shutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the Container and a ProviderRegistry so user code can call
// app.Bind(), app.Singleton() and app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg *config.Config
	log *log.Logger
}

type options struct {
	envFiles []string
	logOut   io.Writer
}

// Option configures New.
type Option func(*options)

// WithEnvFiles loads the given .env files instead of the default ".env".
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithLogOutput sends log output to w (default os.Stderr).
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOut = w }
}

// New loads configuration, builds the logger and registers the framework
// providers. The prompt provider is deferred.
func New(opts ...Option) (*Application, error) {
	o := options{logOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Load(o.envFiles...)
	logger, err := logging.New(cfg.Log, o.logOut)
	if err != nil {
		return nil, err
	}

	c := container.New(container.WithLogger(logger))
	a := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		cfg:       cfg,
		log:       logger,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
		&providers.PromptServiceProvider{},
	} {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *log.Logger { return a.log }

// Router resolves the router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Session resolves the prompt session.
func (a *Application) Session() (*prompt.Session, error) {
	return container.Resolve[*prompt.Session](a.Container, connectcluster.ContextKey)
}

// ConnectPrompt resolves the connect-cluster prompt.
func (a *Application) ConnectPrompt() (*connectcluster.Prompt, error) {
	return container.Resolve[*connectcluster.Prompt](a.Container, connectcluster.Key)
}

// Run boots the application (if needed) and serves HTTP on APP_PORT until
// ctx is cancelled or the prompt session is settled, then shuts the server
// down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	router, err := a.Router()
	if err != nil {
		return err
	}
	session, err := a.Session()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.log.WithFields(log.Fields{
		"name": a.cfg.App.Name,
		"addr": srv.Addr,
		"env":  a.cfg.App.Env,
	}).Info("Server starting")

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- errors.Wrap(err, "listen")
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		a.log.Info("Shutdown signal received")
	case <-session.Done():
		a.log.WithField("session", session.ID()).Info("Prompt settled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-serveErr; err != nil {
		return err
	}
	a.log.Info("Server stopped")
	return nil
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }
