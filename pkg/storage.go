package pkg

import (
	"bytes"
	"careers"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumeUploader stores an uploaded resume and returns its public URL.
// Handlers depend on this interface so tests can swap the backend out.
type ResumeUploader interface {
	UploadResume(filename string, contentType string, data io.Reader) (string, error)
}

// StorageClient talks to a Supabase-style object storage REST API. The
// service never reads the file back; only the returned public URL is kept.
type StorageClient struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

func NewStorageClient() *StorageClient {
	cfg := careers.GetConfig().StorageConfig
	return &StorageClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (slf *StorageClient) UploadResume(filename string, contentType string, data io.Reader) (string, error) {
	ext := path.Ext(filename)
	key := fmt.Sprintf("resumes/%s-%d%s", uuid.NewString(), time.Now().UnixMilli(), ext)

	body, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", slf.baseURL, slf.bucket, key)
	req, err := http.NewRequest(http.MethodPost, uploadURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+slf.serviceKey)
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := slf.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", slf.baseURL, slf.bucket, key), nil
}
