// Package service provides business logic for the application.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gistrelay/gistrelay/internal/github"
	"github.com/gistrelay/gistrelay/internal/metrics"
)

// Service errors.
var (
	ErrEmptyUsername = errors.New("username must not be empty")
)

// defaultDescription replaces a null gist description so callers always
// receive a string in that field.
const defaultDescription = "No description provided"

// GistLister fetches the public gists of a user from the upstream API.
// Implemented by *github.Client.
type GistLister interface {
	ListGists(ctx context.Context, username string) (json.RawMessage, error)
}

// GistService handles gist lookup business logic.
type GistService struct {
	client  GistLister
	metrics metrics.Recorder
}

// NewGistService creates a new GistService.
func NewGistService(client GistLister, recorder metrics.Recorder) *GistService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GistService{
		client:  client,
		metrics: recorder,
	}
}

// PublicGists returns the first page of a user's public gists as a JSON
// array. The upstream payload is relayed opaquely except that null
// descriptions are filled with a default, so unknown upstream fields
// survive the round trip.
func (s *GistService) PublicGists(ctx context.Context, username string) (json.RawMessage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}

	start := time.Now()
	raw, err := s.client.ListGists(ctx, username)
	s.metrics.ObserveUpstreamDuration(time.Since(start))

	if err != nil {
		s.metrics.IncGistRequest(outcomeFor(err))
		return nil, err
	}

	normalized, err := normalizeGists(raw)
	if err != nil {
		s.metrics.IncGistRequest(metrics.OutcomeUpstreamError)
		return nil, fmt.Errorf("%w: %v", github.ErrUpstream, err)
	}

	s.metrics.IncGistRequest(metrics.OutcomeOK)
	return normalized, nil
}

// outcomeFor maps a client error onto a metrics outcome label.
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, github.ErrUserNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, github.ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, github.ErrUnreachable):
		return metrics.OutcomeUnreachable
	default:
		return metrics.OutcomeUpstreamError
	}
}

// normalizeGists decodes the upstream array loosely, fills missing or null
// descriptions, and re-encodes. Every other field passes through untouched.
func normalizeGists(raw json.RawMessage) (json.RawMessage, error) {
	var gists []map[string]any
	if err := json.Unmarshal(raw, &gists); err != nil {
		return nil, fmt.Errorf("decoding gist list: %w", err)
	}
	if gists == nil {
		gists = []map[string]any{}
	}

	for _, gist := range gists {
		if desc, ok := gist["description"]; !ok || desc == nil {
			gist["description"] = defaultDescription
		}
	}

	return json.Marshal(gists)
}
