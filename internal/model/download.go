package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultHFEndpoint serves Hugging Face "resolve" downloads.
const DefaultHFEndpoint = "https://huggingface.co"

// DownloadOptions names one model artifact and where to store it. URL wins
// over Repo/Revision/Filename when both are set.
type DownloadOptions struct {
	URL string

	Repo     string
	Revision string
	Filename string
	// Endpoint overrides DefaultHFEndpoint.
	Endpoint string

	OutPath string
	// SHA256 pins the artifact. When empty the digest is taken from the
	// server's ETag metadata; downloads without either are refused.
	SHA256  string
	HFToken string
	Stdout  io.Writer
	Client  *http.Client
}

type AccessDeniedError struct {
	Source string
	Msg    string
}

func (e *AccessDeniedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("access denied for %s", e.Source)
}

// ErrNoChecksum is returned when neither a pin nor server metadata provides a digest.
var ErrNoChecksum = errors.New("unable to resolve sha256 for model artifact; provide a pinned checksum")

// Download fetches the artifact to opts.OutPath and verifies its SHA-256.
// An existing file with the expected digest is left untouched. It returns
// the verified digest.
func Download(ctx context.Context, opts DownloadOptions) (string, error) {
	url, err := resolveURL(opts)
	if err != nil {
		return "", err
	}
	if opts.OutPath == "" {
		return "", errors.New("out path is required")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 0}
	}

	expected := strings.ToLower(strings.TrimSpace(opts.SHA256))
	if expected != "" && !IsSHA256Hex(expected) {
		return "", fmt.Errorf("pinned checksum %q is not a sha256 hex digest", opts.SHA256)
	}
	if expected == "" {
		expected, err = resolveChecksumFromMetadata(ctx, client, url, opts.HFToken)
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutPath), 0o755); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}

	if ok, err := existingMatches(opts.OutPath, expected); err != nil {
		return "", err
	} else if ok {
		fmt.Fprintf(opts.Stdout, "skip %s (checksum match)\n", opts.OutPath)
		return expected, nil
	}

	fmt.Fprintf(opts.Stdout, "download %s -> %s\n", url, opts.OutPath)
	actual, err := downloadWithProgress(ctx, client, url, opts.HFToken, opts.OutPath, expected, opts.Stdout)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(opts.Stdout, "verified %s (sha256=%s)\n", opts.OutPath, actual)
	return actual, nil
}

func resolveURL(opts DownloadOptions) (string, error) {
	if opts.URL != "" {
		return opts.URL, nil
	}
	if opts.Repo == "" || opts.Filename == "" {
		return "", errors.New("either a URL or a repo and file name are required")
	}
	endpoint := strings.TrimSuffix(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultHFEndpoint
	}
	revision := opts.Revision
	if revision == "" {
		revision = "main"
	}
	return fmt.Sprintf("%s/%s/resolve/%s/%s", endpoint, opts.Repo, revision, opts.Filename), nil
}

func existingMatches(path, expected string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat existing file: %w", err)
	}
	if fi.IsDir() {
		return false, fmt.Errorf("expected file at %s, found directory", path)
	}
	actual, err := FileSHA256(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

func downloadWithProgress(ctx context.Context, client *http.Client, url, token, outPath, expected string, stdout io.Writer) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	setAuth(req, token)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url, 299); err != nil {
		return "", err
	}

	tmp := outPath + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	h := sha256.New()
	pw := &progressWriter{w: io.MultiWriter(fh, h), total: resp.ContentLength, out: stdout, last: time.Now()}

	if _, err := io.Copy(pw, resp.Body); err != nil {
		_ = fh.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download read failed: %w", err)
	}

	if err := fh.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("%w: %s has sha256=%s, want %s", ErrChecksumMismatch, url, actual, expected)
	}

	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move temp file into place: %w", err)
	}

	return actual, nil
}

// progressWriter reports bytes written at most every 700ms.
type progressWriter struct {
	w       io.Writer
	out     io.Writer
	total   int64
	written int64
	last    time.Time
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if time.Since(p.last) > 700*time.Millisecond {
		if p.total > 0 {
			pct := float64(p.written) * 100 / float64(p.total)
			fmt.Fprintf(p.out, "  progress: %.1f%% (%d/%d bytes)\n", pct, p.written, p.total)
		} else {
			fmt.Fprintf(p.out, "  progress: %d bytes\n", p.written)
		}
		p.last = time.Now()
	}
	return n, err
}

func resolveChecksumFromMetadata(ctx context.Context, client *http.Client, url, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("build metadata request: %w", err)
	}
	setAuth(req, token)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("metadata request failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url, 399); err != nil {
		return "", err
	}

	for _, key := range []string{"X-Linked-Etag", "X-Repo-Commit", "Etag"} {
		if v := normalizeETag(resp.Header.Get(key)); IsSHA256Hex(strings.ToLower(v)) {
			return strings.ToLower(v), nil
		}
	}

	return "", ErrNoChecksum
}

func checkStatus(resp *http.Response, url string, maxOK int) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AccessDeniedError{
			Source: url,
			Msg:    fmt.Sprintf("access denied for %s; provide HF_TOKEN or --hf-token", url),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > maxOK {
		return fmt.Errorf("request for %s failed: %s", url, resp.Status)
	}
	return nil
}

func setAuth(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func normalizeETag(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "W/")
	return strings.Trim(v, "\"")
}
