package csvsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"marketdash/internal/pipeline"
	"marketdash/internal/ports"
)

// maxBodyBytes bounds the snapshot size read over HTTP.
const maxBodyBytes = 256 << 20

// Source implements ports.RowSource for a CSV export stored in a local file or served over HTTP(S).
type Source struct {
	location string
	client   *http.Client
	logger   ports.Logger
}

// Config holds configuration for the CSV source.
type Config struct {
	Location string        // File path or http(s) URL
	Timeout  time.Duration // HTTP timeout; ignored when Client is set
	Client   *http.Client  // Optional HTTP client
	Logger   ports.Logger
}

// New creates a CSV source.
func New(cfg Config) (*Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV source: %w", ports.ErrConfigurationError)
	}
	if strings.TrimSpace(cfg.Location) == "" {
		return nil, fmt.Errorf("CSV source location is empty: %w", ports.ErrConfigurationError)
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Source{location: cfg.Location, client: client, logger: cfg.Logger}, nil
}

// Name returns the source location.
func (s *Source) Name() string {
	return "csv:" + s.location
}

// FetchRows reads the whole export, drops the header and blank lines and tokenizes the rest.
func (s *Source) FetchRows(ctx context.Context) ([][]string, error) {
	text, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(text, "\n")
	rows := pipeline.SplitRows(lines)
	if len(rows) == 0 {
		s.logger.Warn(ctx, "CSV source has no data rows", map[string]interface{}{"source": s.location})
	}
	s.logger.Debug(ctx, "CSV source read", map[string]interface{}{"source": s.location, "lines": len(lines), "rows": len(rows)})
	return rows, nil
}

func (s *Source) read(ctx context.Context) (string, error) {
	if isURL(s.location) {
		return s.fetch(ctx)
	}
	data, err := os.ReadFile(s.location)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read CSV file '%s': %w", ports.ErrSourceUnavailable, s.location, err)
	}
	return string(data), nil
}

func (s *Source) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for '%s': %w", s.location, ports.ErrConfigurationError)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: fetch '%s': %w", ports.ErrContextCanceled, s.location, ctx.Err())
		}
		return "", fmt.Errorf("%w: fetch '%s': %w", ports.ErrSourceUnavailable, s.location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: fetch '%s': unexpected status %s", ports.ErrSourceUnavailable, s.location, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body of '%s': %w", ports.ErrSourceUnavailable, s.location, err)
	}
	return string(body), nil
}

func isURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
