package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLocalStore(t *testing.T, pageSize int32) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "http://localhost:8080/", []byte("secret"), pageSize)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestLocalStore_PutImageWritesSidecar(t *testing.T) {
	s := newTestLocalStore(t, 0)
	ctx := context.Background()

	if err := s.PutImage(ctx, "abc/20240501120000.png", []byte("png-bytes")); err != nil {
		t.Fatalf("PutImage failed: %v", err)
	}

	data, meta, err := s.ReadImage("abc/20240501120000.png")
	if err != nil {
		t.Fatalf("ReadImage failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected data %q", data)
	}
	if meta.Key != "abc/20240501120000.png" || meta.ContentType != ContentTypePNG || meta.Size != 9 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", meta.Version)
	}

	if _, err := os.Stat(filepath.Join(s.rootPath, "abc", "20240501120000.png.meta.yaml")); err != nil {
		t.Errorf("expected sidecar on disk: %v", err)
	}
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	s := newTestLocalStore(t, 0)
	for _, key := range []string{"", "/etc/passwd", "../x.png", "a/../../x.png", "a//b.png", "a\\b.png", "x.png.meta.yaml"} {
		if err := s.PutImage(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestLocalStore_ListPageEmpty(t *testing.T) {
	s := newTestLocalStore(t, 0)
	page, err := s.ListPage(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Keys) != 0 || page.NextToken != "" {
		t.Errorf("expected empty exhausted page, got %+v", page)
	}
}

func TestLocalStore_PaginationVisitsEveryKeyOnce(t *testing.T) {
	for _, pageSize := range []int32{1, 2, 3, 7, 10, 0} {
		t.Run(fmt.Sprintf("page_size_%d", pageSize), func(t *testing.T) {
			s := newTestLocalStore(t, pageSize)
			ctx := context.Background()

			want := map[string]bool{}
			for i := 0; i < 7; i++ {
				key := NewImageKey(time.Now())
				want[key] = true
				if err := s.PutImage(ctx, key, []byte{byte(i)}); err != nil {
					t.Fatal(err)
				}
			}

			seen := map[string]int{}
			token := ""
			for pages := 0; ; pages++ {
				if pages > 10 {
					t.Fatal("pagination did not terminate")
				}
				page, err := s.ListPage(ctx, token)
				if err != nil {
					t.Fatalf("ListPage failed: %v", err)
				}
				for _, k := range page.Keys {
					seen[k]++
				}
				if page.NextToken == "" {
					break
				}
				token = page.NextToken
			}

			if len(seen) != len(want) {
				t.Fatalf("expected %d keys, saw %d", len(want), len(seen))
			}
			for k, n := range seen {
				if !want[k] {
					t.Errorf("unexpected key %q", k)
				}
				if n != 1 {
					t.Errorf("key %q listed %d times", k, n)
				}
			}
		})
	}
}

func TestLocalStore_ListPageInvalidToken(t *testing.T) {
	s := newTestLocalStore(t, 0)
	if _, err := s.ListPage(context.Background(), "%%%"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLocalStore_SkipsFilesWithoutMetadata(t *testing.T) {
	s := newTestLocalStore(t, 0)
	if err := os.WriteFile(filepath.Join(s.rootPath, "stray.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.PutImage(context.Background(), "kept.png", []byte("x")); err != nil {
		t.Fatal(err)
	}

	page, err := s.ListPage(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Keys) != 1 || page.Keys[0] != "kept.png" {
		t.Errorf("expected only kept.png, got %v", page.Keys)
	}
}

func TestLocalStore_PresignAndVerify(t *testing.T) {
	s := newTestLocalStore(t, 0)
	key := "id 1/20240501120000.png"

	raw, err := s.PresignURL(context.Background(), key, time.Hour)
	if err != nil {
		t.Fatalf("PresignURL failed: %v", err)
	}
	if !strings.HasPrefix(raw, "http://localhost:8080/images/id%201/20240501120000.png?") {
		t.Fatalf("unexpected url %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	expires := u.Query().Get("expires")
	signature := u.Query().Get("signature")

	if err := s.Verify(key, expires, signature); err != nil {
		t.Errorf("expected valid signature, got %v", err)
	}
	if err := s.Verify("other.png", expires, signature); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature for other key, got %v", err)
	}
	if err := s.Verify(key, "not-a-number", signature); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature for bad expiry, got %v", err)
	}

	s.now = func() time.Time { return time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC) }
	if err := s.Verify(key, expires, signature); !errors.Is(err, ErrURLExpired) {
		t.Errorf("expected ErrURLExpired, got %v", err)
	}
}

func TestLocalStore_ReadImageNotFound(t *testing.T) {
	s := newTestLocalStore(t, 0)
	if _, _, err := s.ReadImage("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewLocalStore_RandomSigningKey(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "http://x", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.signingKey) != 32 {
		t.Errorf("expected generated 32-byte key, got %d bytes", len(s.signingKey))
	}
	if s.pageSize != defaultLocalPageSize {
		t.Errorf("expected default page size, got %d", s.pageSize)
	}
	if _, err := NewLocalStore("", "http://x", nil, 0); err == nil {
		t.Error("expected error for empty root")
	}
}
