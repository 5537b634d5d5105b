// Package connectcluster implements the connect-cluster prompt: the user
// supplies a cluster URL (or picks the local cluster) and the prompt
// finishes with the normalized endpoint.
package connectcluster

import (
	stderrors "errors"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/km-arc/sfx-di/framework/config"
	"github.com/km-arc/sfx-di/framework/prompt"
)

// Container keys.
const (
	Key        = "prompt.connect-cluster"
	ContextKey = "prompt.context"
)

// Injects lists the keys NewPrompt takes, in parameter order.
var Injects = []string{ContextKey, "config", "logger"}

// ErrSettled is returned once the prompt has been finished or closed.
var ErrSettled = stderrors.New("prompt already settled")

// settler is implemented by prompt contexts that can report being done.
type settler interface {
	Settled() bool
}

// tryFinisher is implemented by prompt contexts that finish atomically.
type tryFinisher interface {
	TryFinish(value any) bool
}

// Prompt drives one connect-cluster interaction.
type Prompt struct {
	ctx      prompt.Context
	localURL string
	log      log.FieldLogger
}

// NewPrompt builds a Prompt. cfg and logger may be nil.
func NewPrompt(ctx prompt.Context, cfg *config.Config, logger log.FieldLogger) *Prompt {
	localURL := config.DefaultLocalClusterURL
	if cfg != nil && cfg.Cluster.LocalURL != "" {
		localURL = cfg.Cluster.LocalURL
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Prompt{ctx: ctx, localURL: localURL, log: logger}
}

// LocalURL is the URL used when connecting locally.
func (p *Prompt) LocalURL() string { return p.localURL }

// Connect validates raw (or the local URL when local is set) and finishes
// the prompt with scheme://host. On a validation error the prompt stays
// open so the user can correct the input.
func (p *Prompt) Connect(raw string, local bool) (string, error) {
	if p.settled() {
		return "", errors.WithStack(ErrSettled)
	}
	if local {
		raw = p.localURL
	}

	endpoint, err := NormalizeURL(raw)
	if err != nil {
		p.log.WithFields(log.Fields{
			"input": raw,
			"error": err,
		}).Debug("Rejected cluster url")
		return "", err
	}

	if !p.finish(endpoint) {
		return "", errors.WithStack(ErrSettled)
	}
	p.log.WithField("endpoint", endpoint).Info("Connecting to cluster")
	return endpoint, nil
}

// finish settles the context with endpoint, reporting false when another
// answer got there first.
func (p *Prompt) finish(endpoint string) bool {
	if f, ok := p.ctx.(tryFinisher); ok {
		return f.TryFinish(endpoint)
	}
	p.ctx.Finish(endpoint)
	return true
}

// Exit closes the prompt without a result.
func (p *Prompt) Exit() {
	p.log.Debug("Connect-cluster prompt closed")
	p.ctx.Close()
}

func (p *Prompt) settled() bool {
	s, ok := p.ctx.(settler)
	return ok && s.Settled()
}
