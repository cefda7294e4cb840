package commands

import (
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/app"
	"tableflip.dev/palette/pkg/logging"
	"tableflip.dev/palette/pkg/store"
)

// env builds the journal service once per process, on first use, so commands
// like version never touch the store.
type env struct {
	once sync.Once
	cfg  *store.FileConfig
	log  *zap.Logger
	svc  *app.Service
	err  error
}

func (e *env) load() {
	e.cfg, e.err = store.LoadConfig()
	if e.err != nil {
		return
	}
	e.log, e.err = logging.New(logging.Options{Level: e.cfg.Log.Level, Format: e.cfg.Log.Format})
	if e.err != nil {
		return
	}
	p, err := store.Load(e.cfg, store.WithLogger(e.log))
	if err != nil {
		e.err = err
		return
	}
	e.svc = app.New(e.cfg, p, e.log)
}

// Service returns the shared journal service.
func (e *env) Service() (*app.Service, error) {
	e.once.Do(e.load)
	return e.svc, e.err
}

// Config returns the resolved configuration.
func (e *env) Config() (*store.FileConfig, error) {
	e.once.Do(e.load)
	return e.cfg, e.err
}

// Close waits for in-flight remote mirroring and flushes the log.
func (e *env) Close() {
	if e.svc != nil {
		e.svc.Wait()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}
