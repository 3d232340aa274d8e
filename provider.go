package scopez

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zoobzio/scopez/mdc"
)

// Provider is the composition root: it wires a MirrorStore over the base
// thread-local Store and publishes it to instrumentation code.
// Safe for concurrent use by multiple goroutines.
type Provider struct {
	store    *MirrorStore
	delegate Store
	diag     Diagnostics
	logger   *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithDelegate replaces the base Store wrapped by the provider.
func WithDelegate(store Store) Option {
	return func(p *Provider) {
		p.delegate = store
	}
}

// WithDiagnostics replaces the side-channel the provider mirrors into.
func WithDiagnostics(diag Diagnostics) Option {
	return func(p *Provider) {
		p.diag = diag
	}
}

// WithLogger sets the logger used by the provider and returned by Logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// New builds the provider. It fails if an option removed a required
// collaborator.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		delegate: NewThreadLocalStore(),
		diag:     mdc.Channel{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	store, err := NewMirrorStore(p.delegate, p.diag)
	if err != nil {
		return nil, err
	}
	p.store = store

	p.logger.Debug("trace scope provider ready",
		zap.String("delegate", fmt.Sprintf("%T", p.delegate)),
		zap.String("diagnostics", fmt.Sprintf("%T", p.diag)),
	)
	return p, nil
}

// Store returns the published Store.
func (p *Provider) Store() Store {
	return p.store
}

// Begin returns a context carrying a new logical thread and an empty
// diagnostic map.
func (p *Provider) Begin(ctx context.Context) context.Context {
	return mdc.Attach(Begin(ctx))
}

// Logger returns the provider's logger annotated with the diagnostic
// entries of ctx and the id of its logical thread.
func (p *Provider) Logger(ctx context.Context) *zap.Logger {
	logger := mdc.Logger(ctx, p.logger)
	if t := ThreadFromContext(ctx); t != nil {
		logger = logger.With(zap.Stringer("thread", t.ID()))
	}
	return logger
}
