package refseq

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// NCBIGateway fetches reference sequence slices from the NCBI E-utilities
// efetch endpoint. Each call retrieves a FASTA slice of the requested
// accession. Requests are rate limited to stay inside NCBI's per-second
// quota; there is no internal retry, that belongs to the caller.
type NCBIGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rateLimiter
}

// NewNCBIGateway creates a gateway against the public E-utilities endpoint
// with a 30 second request timeout and a 3 requests/second limit.
func NewNCBIGateway() *NCBIGateway {
	return &NCBIGateway{
		baseURL: "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: newRateLimiter(3.0),
	}
}

// SetBaseURL overrides the E-utilities endpoint (used in tests and for
// mirrors).
func (g *NCBIGateway) SetBaseURL(u string) {
	g.baseURL = strings.TrimSuffix(u, "/")
}

// SetAPIKey attaches an NCBI API key, which raises the server-side rate
// limit to 10 requests/second.
func (g *NCBIGateway) SetAPIKey(key string) {
	g.apiKey = key
	if key != "" {
		g.limiter = newRateLimiter(10.0)
	}
}

// FetchBase returns the single reference base at a 1-based position.
func (g *NCBIGateway) FetchBase(accession string, pos int64) (string, error) {
	return g.FetchRange(accession, pos-1, pos)
}

// FetchRange returns the reference sequence for a 0-based half-open interval.
func (g *NCBIGateway) FetchRange(accession string, start, end int64) (string, error) {
	if end <= start {
		return "", fmt.Errorf("empty range [%d,%d) for %s", start, end, accession)
	}

	params := url.Values{}
	params.Set("db", "nuccore")
	params.Set("id", accession)
	params.Set("rettype", "fasta")
	params.Set("retmode", "text")
	// efetch slices are 1-based inclusive.
	params.Set("seq_start", strconv.FormatInt(start+1, 10))
	params.Set("seq_stop", strconv.FormatInt(end, 10))
	if g.apiKey != "" {
		params.Set("api_key", g.apiKey)
	}

	g.limiter.wait()

	resp, err := g.httpClient.Get(g.baseURL + "/efetch.fcgi?" + params.Encode())
	if err != nil {
		return "", fmt.Errorf("efetch %s:[%d,%d): %w", accession, start, end, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("efetch %s:[%d,%d): status %d: %s",
			accession, start, end, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	seq, err := parseFasta(resp.Body)
	if err != nil {
		return "", fmt.Errorf("efetch %s:[%d,%d): %w", accession, start, end, err)
	}
	if int64(len(seq)) != end-start {
		return "", fmt.Errorf("efetch %s:[%d,%d): got %d bases, want %d",
			accession, start, end, len(seq), end-start)
	}
	return seq, nil
}

// parseFasta reads a single-record FASTA body and returns the concatenated
// sequence lines.
func parseFasta(r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty FASTA response")
	}
	return b.String(), nil
}

// rateLimiter spaces calls at least minInterval apart.
type rateLimiter struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
}

func newRateLimiter(callsPerSecond float64) *rateLimiter {
	return &rateLimiter{
		interval: time.Duration(float64(time.Second) / callsPerSecond),
	}
}

func (l *rateLimiter) wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if elapsed := now.Sub(l.last); elapsed < l.interval {
		time.Sleep(l.interval - elapsed)
		now = time.Now()
	}
	l.last = now
}
