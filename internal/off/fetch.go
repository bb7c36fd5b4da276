package off

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sethvargo/go-retry"

	"nutridiary/internal/logging"
)

const progressStep = 256 << 20 // log every 256 MiB

// newBackoff is a seam so tests do not wait out real delays.
var newBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(4, retry.NewExponential(2*time.Second))
}

// Fetch downloads the OpenFoodFacts export at url to dest. Network failures
// and 5xx/429 responses are retried with exponential backoff; other HTTP
// errors abort immediately. The download goes to a temporary file first, so
// an interrupted run never leaves a truncated dest behind.
func Fetch(ctx context.Context, client *http.Client, url, dest string, log logging.Logger) error {
	if client == nil {
		client = http.DefaultClient
	}

	err := retry.Do(ctx, newBackoff(), func(ctx context.Context) error {
		if err := download(ctx, client, url, dest, log); err != nil {
			if retryable(err) {
				log.Warn(ctx, "download failed, retrying", "url", url, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return nil
}

// httpStatusError marks an HTTP response outside 2xx.
type httpStatusError struct {
	code int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func retryable(err error) bool {
	var se *httpStatusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	// Anything without a status code is a transport failure.
	return true
}

func download(ctx context.Context, client *http.Client, url, dest string, log logging.Logger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httpStatusError{code: resp.StatusCode}
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	log.Info(ctx, "downloading export", "url", url, "size", resp.ContentLength)

	n, err := io.Copy(f, &progressReader{ctx: ctx, r: resp.Body, log: log})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}

	log.Info(ctx, "export downloaded", "dest", dest, "bytes", n)
	return nil
}

// progressReader logs a line every progressStep bytes read.
type progressReader struct {
	ctx  context.Context
	r    io.Reader
	log  logging.Logger
	read int64
	next int64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.next == 0 {
		p.next = progressStep
	}
	if p.read >= p.next {
		p.log.Info(p.ctx, "download progress", "bytes", p.read)
		p.next += progressStep
	}
	return n, err
}
