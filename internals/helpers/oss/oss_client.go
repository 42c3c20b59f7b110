// internals/helpers/oss/oss_client.go
package oss

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Storage adalah kolaborator blob-storage yang dipakai service/controller.
// Record hanya menyimpan key hasil Put; mekanik penyimpanan tidak bocor keluar.
type Storage interface {
	Put(key string, r io.Reader) (url string, err error)
	Delete(key string) error
	Exists(key string) (bool, error)
}

type OSSService struct {
	bucket    *oss.Bucket
	publicURL string // base URL publik, tanpa trailing slash
}

var _ Storage = (*OSSService)(nil)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// NewOSSServiceFromEnv membaca OSS_ENDPOINT, OSS_ACCESS_KEY_ID,
// OSS_ACCESS_KEY_SECRET, OSS_BUCKET, OSS_PUBLIC_BASE_URL.
func NewOSSServiceFromEnv() (*OSSService, error) {
	endpoint := getEnv("OSS_ENDPOINT")
	keyID := getEnv("OSS_ACCESS_KEY_ID")
	keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("oss: konfigurasi belum lengkap (endpoint/key/bucket)")
	}

	cli, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss: init client: %w", err)
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss: open bucket %s: %w", bucketName, err)
	}

	base := getEnv("OSS_PUBLIC_BASE_URL")
	if base == "" {
		base = fmt.Sprintf("https://%s.%s", bucketName, endpoint)
	}
	return &OSSService{bucket: bucket, publicURL: strings.TrimRight(base, "/")}, nil
}

func (s *OSSService) Put(key string, r io.Reader) (string, error) {
	if err := s.bucket.PutObject(key, r); err != nil {
		return "", fmt.Errorf("oss: put %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *OSSService) Delete(key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if err := s.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("oss: delete %s: %w", key, err)
	}
	return nil
}

func (s *OSSService) Exists(key string) (bool, error) {
	ok, err := s.bucket.IsObjectExist(key)
	if err != nil {
		return false, fmt.Errorf("oss: exists %s: %w", key, err)
	}
	return ok, nil
}

func (s *OSSService) URL(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}

// BuildKey membuat key unik per direktori logis, mempertahankan ekstensi asli.
func BuildKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s",
		strings.Trim(dir, "/"),
		time.Now().Format("2006/01"),
		uuid.NewString(),
		ext,
	)
}

// PutFormFile: jalur upload dari multipart form, return key + URL publik.
func PutFormFile(st Storage, fh *multipart.FileHeader, dir string) (key, url string, err error) {
	f, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("oss: open form file: %w", err)
	}
	defer f.Close()

	key = BuildKey(dir, fh.Filename)
	url, err = st.Put(key, f)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}
