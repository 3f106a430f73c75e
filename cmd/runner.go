package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikaelmello/goicmp/core"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Runner is the struct that is responsible for running the program
type Runner struct {
	host     string
	settings *core.Settings
	pinger   *core.Pinger
	printer  printer
	logger   *log.Logger
	registry *prometheus.Registry

	ctx    context.Context
	cancel context.CancelFunc

	sigch chan os.Signal
	endch chan error
}

// newRunner creates a runner with the initialized values
func newRunner(host string, settings *core.Settings, port core.SocketPort, p printer,
	opts ...core.PingerOption) (*Runner, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := core.NewLogger(settings.LoggingLevel)
	registry := prometheus.NewRegistry()
	opts = append([]core.PingerOption{core.WithMetrics(core.NewMetrics(registry))}, opts...)

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		host:     host,
		settings: settings,
		pinger:   core.NewPinger(port, logger, opts...),
		printer:  p,
		logger:   logger,
		registry: registry,
		ctx:      ctx,
		cancel:   cancel,
		sigch:    make(chan os.Signal, 1),
		endch:    make(chan error, 1),
	}, nil
}

// Start starts the runner
func (r *Runner) Start() {
	r.handleSignals()

	if r.settings.MetricsAddress != "" {
		serveMetrics(r.ctx, r.settings.MetricsAddress, r.registry, r.logger)
	}

	go func() {
		r.endch <- r.run()
	}()
}

// RequestStop requests the stop of the stream
func (r *Runner) RequestStop() {
	r.cancel()
}

// Wait blocks the caller until the runner finishes
func (r *Runner) Wait() error {
	return <-r.endch
}

func (r *Runner) run() error {
	defer r.cancel()
	defer signal.Stop(r.sigch)

	start := time.Now()
	r.printer.onStart(r.host, r.settings.PayloadSize)

	stream := r.pinger.StreamHost(r.ctx, r.host, r.settings.ResolveTimeout, r.settings.StreamOptions())

	var (
		stats core.Statistics
		err   error
	)
	for window := range core.CacheLatest(r.ctx, stream, r.settings.CacheSize) {
		res := window[len(window)-1]
		if f, ok := res.(core.Failed); ok && isResolveError(f) {
			err = f
			continue
		}
		stats = stats.Add(res)
		r.printer.onResult(res, window)
	}

	if err != nil {
		return err
	}
	r.printer.onEnd(r.host, stats, time.Since(start))
	return nil
}

func isResolveError(f core.Failed) bool {
	return errors.Is(f, core.ErrDNSResolveTimeout) || errors.Is(f, core.ErrDNSResolveFailure)
}

// handleSignals registers the signals that stop the stream
func (r *Runner) handleSignals() {
	signal.Notify(r.sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-r.sigch:
			r.RequestStop()
		case <-r.ctx.Done():
		}
	}()
}
