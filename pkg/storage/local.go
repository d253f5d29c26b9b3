package storage

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gomcpgo/cloud_ai/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	metadataSuffix       = ".meta.yaml"
	metadataVersion      = "1.0"
	defaultLocalPageSize = 1000
)

// LocalStore handles local file storage for images. Each image has a YAML
// metadata sidecar; listing walks the sidecars in key order.
type LocalStore struct {
	rootPath   string
	publicURL  string
	signingKey []byte
	pageSize   int
	now        func() time.Time
}

// NewLocalStore creates a new local store rooted at rootPath. URLs are signed
// with signingKey, or with a random per-process key when it is empty.
func NewLocalStore(rootPath, publicURL string, signingKey []byte, pageSize int32) (*LocalStore, error) {
	if rootPath == "" {
		return nil, fmt.Errorf("local store root is required")
	}
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}

	if len(signingKey) == 0 {
		signingKey = make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
	}

	size := int(pageSize)
	if size <= 0 {
		size = defaultLocalPageSize
	}

	return &LocalStore{
		rootPath:   rootPath,
		publicURL:  strings.TrimRight(publicURL, "/"),
		signingKey: signingKey,
		pageSize:   size,
		now:        time.Now,
	}, nil
}

// resolve maps a key to a path under the root, rejecting keys that escape it
func (s *LocalStore) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", ErrInvalidKey
		}
	}
	if strings.HasSuffix(key, metadataSuffix) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.rootPath, filepath.FromSlash(key)), nil
}

// PutImage saves the image and its metadata sidecar
func (s *LocalStore) PutImage(ctx context.Context, key string, data []byte) error {
	imagePath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(imagePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	metadata := &types.ImageMetadata{
		Version:     metadataVersion,
		Key:         key,
		ContentType: ContentTypePNG,
		Size:        len(data),
		Timestamp:   s.now().UTC(),
	}
	return s.saveMetadata(imagePath, metadata)
}

// saveMetadata writes the sidecar for the image at imagePath
func (s *LocalStore) saveMetadata(imagePath string, metadata *types.ImageMetadata) error {
	data, err := yaml.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(imagePath+metadataSuffix, data, 0644); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// LoadMetadata loads the sidecar for key
func (s *LocalStore) LoadMetadata(key string) (*types.ImageMetadata, error) {
	imagePath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return loadMetadataFile(imagePath + metadataSuffix)
}

func loadMetadataFile(path string) (*types.ImageMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata types.ImageMetadata
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &metadata, nil
}

// keys returns every stored key in lexical order
func (s *LocalStore) keys() ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, metadataSuffix) {
			return nil
		}
		metadata, err := loadMetadataFile(path)
		if err != nil {
			// Skip entries without valid metadata
			return nil
		}
		if _, err := os.Stat(strings.TrimSuffix(path, metadataSuffix)); err != nil {
			return nil
		}
		keys = append(keys, metadata.Key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk image directory: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// ListPage returns up to the page size keys after the one encoded in token
func (s *LocalStore) ListPage(ctx context.Context, token string) (Page, error) {
	after := ""
	if token != "" {
		decoded, err := base64.RawURLEncoding.DecodeString(token)
		if err != nil || len(decoded) == 0 {
			return Page{}, ErrInvalidToken
		}
		after = string(decoded)
	}

	all, err := s.keys()
	if err != nil {
		return Page{}, err
	}

	start := sort.SearchStrings(all, after)
	if start < len(all) && all[start] == after {
		start++
	}

	end := start + s.pageSize
	if end > len(all) {
		end = len(all)
	}

	page := Page{Keys: append([]string{}, all[start:end]...)}
	if end < len(all) {
		page.NextToken = base64.RawURLEncoding.EncodeToString([]byte(all[end-1]))
	}
	return page, nil
}

// PresignURL returns an HMAC-signed URL served by the local image route
func (s *LocalStore) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.resolve(key); err != nil {
		return "", err
	}

	expires := s.now().Add(ttl).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", s.sign(key, expires))

	return fmt.Sprintf("%s/images/%s?%s", s.publicURL, escapeKey(key), q.Encode()), nil
}

// Verify checks a signature and expiry produced by PresignURL
func (s *LocalStore) Verify(key, expires, signature string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	expected := s.sign(key, exp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	if s.now().Unix() > exp {
		return ErrURLExpired
	}
	return nil
}

// ReadImage returns the image bytes and metadata for key
func (s *LocalStore) ReadImage(key string) ([]byte, *types.ImageMetadata, error) {
	imagePath, err := s.resolve(key)
	if err != nil {
		return nil, nil, err
	}

	metadata, err := loadMetadataFile(imagePath + metadataSuffix)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, metadata, nil
}

func (s *LocalStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(key))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
