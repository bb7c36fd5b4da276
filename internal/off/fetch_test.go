package off

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("export payload"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "export.csv.gz")
	err := Fetch(context.Background(), srv.Client(), srv.URL, dest, testLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "export payload", string(data))

	_, err = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(err))
}

func fastBackoff(t *testing.T) {
	t.Helper()

	orig := newBackoff
	newBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(4, retry.NewConstant(time.Millisecond))
	}
	t.Cleanup(func() { newBackoff = orig })
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	fastBackoff(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("second time lucky"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "export.csv.gz")
	err := Fetch(context.Background(), srv.Client(), srv.URL, dest, testLogger())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", string(data))
}

func TestFetch_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "export.csv.gz")
	err := Fetch(context.Background(), srv.Client(), srv.URL, dest, testLogger())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
