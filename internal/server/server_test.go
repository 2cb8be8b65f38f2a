package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(http.NewServeMux(), "127.0.0.1:0", Timeouts{
		Read:     time.Second,
		Write:    time.Second,
		Shutdown: time.Second,
	}, logger)
}

func TestServer_ShutdownHooksRunInReverseOrder(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	var order []string
	srv.OnShutdown("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	srv.OnShutdown("second", func(ctx context.Context) error {
		order = append(order, "second")
		return nil
	})

	if err := srv.gracefulShutdown(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("expected LIFO order [second first], got %v", order)
	}
}

func TestServer_ShutdownAggregatesHookErrors(t *testing.T) {
	t.Parallel()

	srv := newTestServer()

	ran := 0
	srv.OnShutdown("healthy", func(ctx context.Context) error {
		ran++
		return nil
	})
	srv.OnShutdown("broken", func(ctx context.Context) error {
		ran++
		return errors.New("still draining")
	})

	err := srv.gracefulShutdown()
	if err == nil {
		t.Fatal("expected error from failing hook, got nil")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected failing component named in error, got %v", err)
	}
	if ran != 2 {
		t.Errorf("expected all hooks to run despite the failure, got %d", ran)
	}
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	srv := newTestServer()
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("unexpected addr: %s", srv.Addr())
	}
}
