package kv

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Recorder receives one observation per store call.
type Recorder interface {
	ObserveStoreOp(backend, op, result string, duration time.Duration)
}

// Instrumented decorates a Store with metrics and debug logging.
type Instrumented struct {
	next     Store
	backend  string
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewInstrumented wraps next. recorder and logger may be nil.
func NewInstrumented(next Store, backend string, recorder Recorder, logger *zap.Logger) *Instrumented {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{
		next:     next,
		backend:  backend,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *Instrumented) observe(op, key string, start time.Time, err error) {
	elapsed := s.now().Sub(start)
	result := resultLabel(err)
	if s.recorder != nil {
		s.recorder.ObserveStoreOp(s.backend, op, result, elapsed)
	}
	fields := []zap.Field{
		zap.String("backend", s.backend),
		zap.String("op", op),
		zap.String("key", key),
		zap.String("result", result),
		zap.Duration("elapsed", elapsed),
	}
	if result == "error" {
		s.logger.Error("Store operation failed", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Debug("Store operation", fields...)
}

// Get implements Store.
func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := s.now()
	v, err := s.next.Get(ctx, key)
	s.observe("get", key, start, err)
	return v, err
}

// Set implements Store.
func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := s.now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", key, start, err)
	return err
}

// Close implements Store.
func (s *Instrumented) Close() error {
	return s.next.Close()
}
