package ottava

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	Mt "github.com/craque/ottava/types"
)

const (
	webTimeout = 10 * time.Second
)

// MetricsProvider supplies one eight-value vector per cell.
// Any implementation honoring the length and non-negative
// contract is substitutable.
type MetricsProvider interface {
	NextVector() (Mt.MetricVector, error)
}

// RandomProvider yields uniform integers in [0, Max),
// the stand-in for a real metrics source.
type RandomProvider struct {
	Max float64
	rng *rand.Rand
}

func NewRandomProvider(max float64) *RandomProvider {
	return NewSeededRandomProvider(max, time.Now().UnixNano())
}

// NewSeededRandomProvider pins the sequence for tests.
// A ceiling below 1 falls back to the default: Intn needs
// a positive range.
func NewSeededRandomProvider(max float64, seed int64) *RandomProvider {
	if max < 1 {
		max = DefaultGlyphConfig().MaxValue
	}
	return &RandomProvider{
		Max: max,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomProvider) NextVector() (Mt.MetricVector, error) {
	vec := make(Mt.MetricVector, Mt.VectorLen)
	for i := range vec {
		vec[i] = float64(r.rng.Intn(int(r.Max)))
	}
	return vec, nil
}

type HTTPClient interface {
	Get(string) (*http.Response, error)
}

// Shared HTTP Client
var sharedHTTPClient = &http.Client{
	Timeout: webTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	},
}

// SingleFetchWithClient handles the messy business of the HTTP connection
// and is testable with dependency injection, called by SingleFetch
func SingleFetchWithClient(url string, c HTTPClient) (int, []byte, error) {
	resp, err := c.Get(url)
	if err != nil {
		slog.Error("Fetch Error", slog.Any("Error", err))
		return 0, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("Close Error", slog.Any("Error", err))
			return
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Could not read body", slog.Any("Error", err))
		return 0, nil, err
	}

	return resp.StatusCode, body, err
}

// SingleFetch returns the Response Code, raw byte stream body, and error
// This uses a Shared HTTP Client:
// - to reuse existing endpoint connections
// - to avoid stale connections that eat up OS FDs
func SingleFetch(url string) (int, []byte, error) {
	return SingleFetchWithClient(url, sharedHTTPClient)
}

// MetricKV streams input from the endpoint body and populates
// a map for all key/values, removing whitespace and comments
func MetricKV(d, url string) (map[string]string, error) {
	_, body, err := SingleFetch(url)
	if err != nil {
		return nil, err
	}
	return ParseMetricKV(bytes.NewReader(body), d)
}

func ParseMetricKV(reader io.Reader, d string) (map[string]string, error) {
	envMap := make(map[string]string)
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// ignore whitespace and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on the delimiter /d/
		parts := strings.SplitN(line, d, 2)
		if len(parts) != 2 {
			slog.Error("WARNING: Invalid line", slog.String("line", line))
			continue
		}

		// Extract Key, Clean up Value, Add to Map
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes
		value = strings.Trim(value, `"'`)
		// Take care of any trailing quotes and comments
		if pos := strings.IndexAny(value, `"'#`); pos != -1 {
			value = value[:pos]
		}
		envMap[key] = value
	}

	if err := scanner.Err(); err != nil {
		slog.Error("Problem scanning input", slog.Any("Error", err))
		return nil, fmt.Errorf("scanning error: %w", err)
	}

	return envMap, nil
}

// PollProvider scrapes a KV metrics endpoint and assembles
// the configured eight keys into a vector in direction/phase order.
// A key absent from the scrape reads as 0, which the glyph
// draws as missing.
type PollProvider struct {
	ID    string
	URL   string
	Delim string
	Keys  []string
}

// NewPollProviderFromConfig builds a provider from one config stanza.
func NewPollProviderFromConfig(cf ConfigFile) (*PollProvider, error) {
	if len(cf.Metrics) != Mt.VectorLen {
		return nil, fmt.Errorf("%w: config %q lists %d metrics", ErrVectorLength, cf.ID, len(cf.Metrics))
	}

	delim := cf.Delim
	if delim == "" {
		delim = "="
	}

	return &PollProvider{
		ID:    cf.ID,
		URL:   cf.URL,
		Delim: delim,
		Keys:  cf.Metrics,
	}, nil
}

func (p *PollProvider) NextVector() (Mt.MetricVector, error) {
	kv, err := MetricKV(p.Delim, p.URL)
	if err != nil {
		slog.Error("Could not poll metrics", slog.Any("Error", err))
		return nil, err
	}

	vec := make(Mt.MetricVector, Mt.VectorLen)
	for i, key := range p.Keys {
		raw, ok := kv[key]
		if !ok {
			continue // stays 0, drawn as missing
		}

		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			slog.Error("invalid syntax in metric", slog.Any("Error", err))
			return nil, err
		}
		vec[i] = val
	}

	return vec, nil
}
