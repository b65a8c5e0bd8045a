package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"fitai/plan-service/internal/config"

	"go.uber.org/zap"
)

func TestNewVideoObjectKey(t *testing.T) {
	a := NewVideoObjectKey("Supino.MOV")
	b := NewVideoObjectKey("Supino.MOV")
	if a == b {
		t.Error("keys should be unique")
	}
	if !strings.HasPrefix(a, "exercises/") || !strings.HasSuffix(a, ".mov") {
		t.Errorf("key = %q", a)
	}
	if k := NewVideoObjectKey("blob"); !strings.HasSuffix(k, ".mp4") {
		t.Errorf("key without extension = %q", k)
	}
}

func newTestStorage(t *testing.T, publicBase string) FileStorage {
	t.Helper()
	s, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://minio.local:9000",
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "videos",
		PublicBaseURL:   publicBase,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}
	return s
}

// Presigning is local signing only; no request reaches the endpoint.
func TestS3Storage_PresignUploadUsesPathStyleEndpoint(t *testing.T) {
	s := newTestStorage(t, "")
	raw, err := s.GeneratePresignedUploadURL(context.Background(), "exercises/x.mp4", "video/mp4", 0)
	if err != nil {
		t.Fatal(err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "minio.local:9000" || u.Path != "/videos/exercises/x.mp4" {
		t.Errorf("url = %s", raw)
	}
	if u.Query().Get("X-Amz-Expires") != "900" {
		t.Errorf("expires = %q, want 900", u.Query().Get("X-Amz-Expires"))
	}
}

func TestS3Storage_ObjectURL(t *testing.T) {
	public := newTestStorage(t, "https://cdn.example.com/")
	got, err := public.ObjectURL(context.Background(), "exercises/x.mp4")
	if err != nil || got != "https://cdn.example.com/exercises/x.mp4" {
		t.Errorf("public ObjectURL = %q, %v", got, err)
	}

	private := newTestStorage(t, "")
	got, err = private.ObjectURL(context.Background(), "exercises/x.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "X-Amz-Signature=") || !strings.Contains(got, "X-Amz-Expires=604800") {
		t.Errorf("presigned ObjectURL = %q", got)
	}
}
