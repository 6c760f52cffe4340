package tokenizer

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMergeableRanks(t *testing.T) {
	line1 := base64.StdEncoding.EncodeToString([]byte("a")) + " 0\n"
	line2 := base64.StdEncoding.EncodeToString([]byte("b")) + " 1\n"
	pairs, err := ParseMergeableRanks([]byte(line1 + line2))
	if err != nil {
		t.Fatalf("ParseMergeableRanks: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2", len(pairs))
	}
	if string(pairs[0][0].([]byte)) != "a" || pairs[0][1].(Rank) != 0 {
		t.Fatalf("pairs[0] = %v", pairs[0])
	}
}

func TestParseMergeableRanksMalformed(t *testing.T) {
	if _, err := ParseMergeableRanks([]byte("not-two-fields-here\n")); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestParseMergeableRanksBadBase64(t *testing.T) {
	if _, err := ParseMergeableRanks([]byte("not*base64 0\n")); err == nil {
		t.Fatalf("expected error for bad base64")
	} else if _, ok := err.(*Base64DecodeError); !ok {
		t.Fatalf("expected *Base64DecodeError, got %T", err)
	}
}

func TestResolveCacheDirHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envCacheDir, filepath.Join(dir, "cache"))
	got, err := ResolveCacheDir()
	if err != nil {
		t.Fatalf("ResolveCacheDir: %v", err)
	}
	if got != filepath.Join(dir, "cache") {
		t.Fatalf("ResolveCacheDir() = %q, want %q", got, filepath.Join(dir, "cache"))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
}

func TestFetchAndCacheVerifiesAndCaches(t *testing.T) {
	body := []byte("hello tiktoken")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	t.Setenv(envCacheDir, t.TempDir())

	got, err := FetchAndCache(srv.URL, "")
	if err != nil {
		t.Fatalf("FetchAndCache: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("FetchAndCache body = %q, want %q", got, body)
	}

	// Second call should hit the on-disk cache, not the server.
	srv.Close()
	got2, err := FetchAndCache(srv.URL, "")
	if err != nil {
		t.Fatalf("FetchAndCache (cached): %v", err)
	}
	if string(got2) != string(body) {
		t.Fatalf("cached FetchAndCache body = %q, want %q", got2, body)
	}
}

func TestFetchAndCacheSHA256Mismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()
	t.Setenv(envCacheDir, t.TempDir())

	const wrongSHA256 = "0000000000000000000000000000000000000000000000000000000000000000"
	if _, err := FetchAndCache(srv.URL, wrongSHA256[:64]); err == nil {
		t.Fatalf("expected sha256 mismatch error")
	}
}
