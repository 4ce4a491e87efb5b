package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/farcloser/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/mimesis/internal/types"
)

// pngBytes starts with the PNG signature so content sniffing resolves
// image/png without a real image payload.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func TestValidate(t *testing.T) {
	valid := types.FileDescriptor{Name: "a.png", MIMEType: "image/png", SizeBytes: 1024}
	assert.NoError(t, Validate(valid))

	document := valid
	document.MIMEType = "application/pdf"
	assert.ErrorIs(t, Validate(document), ErrUnsupportedMedia)

	empty := valid
	empty.SizeBytes = 0
	assert.ErrorIs(t, Validate(empty), ErrEmptyFile)

	huge := valid
	huge.SizeBytes = MaxSizeBytes + 1
	assert.ErrorIs(t, Validate(huge), ErrTooLarge)
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "sample.png")
	require.NoError(t, os.WriteFile(filePath, pngBytes, 0o600))

	desc, err := FromPath(filePath)
	require.NoError(t, err)

	assert.Equal(t, "sample.png", desc.Name)
	assert.Equal(t, "image/png", desc.MIMEType)
	assert.Equal(t, int64(len(pngBytes)), desc.SizeBytes)
	assert.False(t, desc.LastModified.IsZero())
}

func TestFromPathMissingFile(t *testing.T) {
	_, err := FromPath(filepath.Join(t.TempDir(), "absent.png"))
	assert.ErrorIs(t, err, fault.ErrReadFailure)
}

func TestFromPathRejectsNonMedia(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("plain text"), 0o600))

	_, err := FromPath(filePath)
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestFromURLDirect(t *testing.T) {
	modified := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Last-Modified", modified.Format(http.TimeFormat))
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	fetcher := &Fetcher{Client: server.Client()}

	desc, err := fetcher.FromURL(context.Background(), server.URL+"/media/render.png")
	require.NoError(t, err)

	assert.Equal(t, "render.png", desc.Name)
	assert.Equal(t, "image/png", desc.MIMEType)
	assert.Equal(t, int64(len(pngBytes)), desc.SizeBytes)
	assert.True(t, desc.LastModified.Equal(modified))
}

func TestFromURLSniffsGenericContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	fetcher := &Fetcher{Client: server.Client()}

	desc, err := fetcher.FromURL(context.Background(), server.URL+"/blob")
	require.NoError(t, err)
	assert.Equal(t, "image/png", desc.MIMEType)
}

func TestFromURLRelayFallback(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer relay.Close()

	fetcher := &Fetcher{
		Client: &http.Client{Timeout: time.Second},
		Relays: []string{relay.URL + "/raw?url="},
	}

	desc, err := fetcher.FromURL(context.Background(), broken.URL+"/render.png")
	require.NoError(t, err)
	assert.Equal(t, "render.png", desc.Name)
	assert.Equal(t, "image/png", desc.MIMEType)
}

func TestFromURLAllEndpointsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := &Fetcher{
		Client: &http.Client{Timeout: time.Second},
		Relays: []string{server.URL + "/relay?url="},
	}

	_, err := fetcher.FromURL(context.Background(), server.URL+"/gone.png")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFromURLRejectsBadSchemes(t *testing.T) {
	fetcher := DefaultFetcher()

	for _, raw := range []string{"ftp://example.com/a.png", "file:///etc/passwd", "not-a-url"} {
		_, err := fetcher.FromURL(context.Background(), raw)
		assert.ErrorIs(t, err, ErrMalformedURL, raw)
	}
}
