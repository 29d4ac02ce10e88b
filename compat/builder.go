// FILE: lixenwraith/recorder/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/recorder"
)

// Builder creates adapters for gnet, fasthttp and Fiber that share one recorder.
// It can use an existing *recorder.Recorder or create a new one from a *recorder.Config.
type Builder struct {
	recorder *recorder.Recorder
	cfg      *recorder.Config
	opts     []recorder.Option
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithRecorder specifies an existing recorder to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithRecorder(r *recorder.Recorder) *Builder {
	if r == nil {
		b.err = fmt.Errorf("recorder/compat: provided recorder cannot be nil")
		return b
	}
	b.recorder = r
	return b
}

// WithConfig provides a configuration and options for a new recorder.
// It is used only if an existing recorder is not provided via WithRecorder;
// with neither, a default recorder is created.
func (b *Builder) WithConfig(cfg *recorder.Config, opts ...recorder.Option) *Builder {
	b.cfg = cfg
	b.opts = opts
	return b
}

// getRecorder resolves the recorder to be used, creating one if necessary
func (b *Builder) getRecorder() (*recorder.Recorder, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.recorder != nil {
		return b.recorder, nil
	}

	r, err := recorder.New(b.cfg, b.opts...)
	if err != nil {
		return nil, fmt.Errorf("recorder/compat: %w", err)
	}

	// Cache the new recorder for subsequent builds with this builder
	b.recorder = r
	return r, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	r, err := b.getRecorder()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(r, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that records structured entries
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	r, err := b.getRecorder()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(r, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	r, err := b.getRecorder()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(r, opts...), nil
}

// BuildFiber creates a Fiber CommonLogger adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	r, err := b.getRecorder()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(r, opts...), nil
}

// GetRecorder returns the underlying recorder, creating it if needed
func (b *Builder) GetRecorder() (*recorder.Recorder, error) {
	return b.getRecorder()
}

// --- Example Usage ---
//
//	rec, err := recorder.NewBuilder().
//		Directory("/var/log/myapp").
//		MaskRulesFile("/etc/myapp/mask.yaml", true).
//		Build()
//	if err != nil { /* handle error */ }
//	defer rec.Shutdown(time.Second)
//
//	builder := compat.NewBuilder().WithRecorder(rec)
//
//	gnetLogger, _ := builder.BuildStructuredGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
//
//	// Fiber: register the adapter as the package logger
//	fiberLogger, _ := builder.BuildFiber()
//	log.SetLogger(fiberLogger) // github.com/gofiber/fiber/v2/log
