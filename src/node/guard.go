package node

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Guard is the single owner of a node's Context. Every access to the Context
// goes through WithContext, which holds the Guard's mutex for the duration of
// one call.
type Guard struct {
	mu  sync.Mutex
	ctx *Context

	logger *logrus.Entry
}

// NewGuard creates a Guard with no Context. One is built lazily on first
// access unless Install is called before.
func NewGuard(logger *logrus.Entry) *Guard {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	return &Guard{
		logger: logger,
	}
}

// WithContext runs fn against the guarded Context and returns its result. fn
// must not retain the Context, nor call back into the Guard.
func WithContext[R any](g *Guard, fn func(*Context) R) R {
	ctx := g.lock()
	defer g.mu.Unlock()

	return fn(ctx)
}

// Do is WithContext for functions without a result.
func (g *Guard) Do(fn func(*Context)) {
	ctx := g.lock()
	defer g.mu.Unlock()

	fn(ctx)
}

// Install replaces the guarded Context and returns the previous one, which may
// be nil. The caller is responsible for closing the previous Context, after
// Install returns.
func (g *Guard) Install(ctx *Context) *Context {
	g.mu.Lock()
	prev := g.ctx
	g.ctx = ctx
	g.mu.Unlock()

	g.logger.WithField("node", ctx.NodeID()).Debug("Installed context")

	return prev
}

// Close removes the guarded Context and closes it. The next access builds a
// new default Context.
func (g *Guard) Close() error {
	g.mu.Lock()
	ctx := g.ctx
	g.ctx = nil
	g.mu.Unlock()

	if ctx == nil {
		return nil
	}
	return ctx.Close()
}

// lock acquires the mutex and returns the Context, building the default one
// if needed. Key generation runs without the mutex; if another caller
// installed a Context meanwhile, the default is dropped.
func (g *Guard) lock() *Context {
	g.mu.Lock()
	if g.ctx != nil {
		return g.ctx
	}
	g.mu.Unlock()

	fresh, err := NewDefaultContext(g.logger)
	if err != nil {
		g.logger.WithError(err).Panic("Building default context")
	}
	g.logger.WithField("node", fresh.NodeID()).Debug("Built default context")

	g.mu.Lock()
	if g.ctx == nil {
		g.ctx = fresh
	}
	return g.ctx
}
