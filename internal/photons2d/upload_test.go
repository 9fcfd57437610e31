package photons2d

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

type fakePutter struct {
	keys   []string
	types  []string
	bodies [][]byte
	err    error
}

func (p *fakePutter) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	p.keys = append(p.keys, aws.StringValue(in.Key))
	p.types = append(p.types, aws.StringValue(in.ContentType))
	p.bodies = append(p.bodies, data)
	return &s3.PutObjectOutput{}, nil
}

func TestNewUploaderWithoutBucket(t *testing.T) {
	t.Setenv("S3_BUCKET", "")
	u, err := NewUploader(UploadCfg{})
	if err != nil || u != nil {
		t.Fatalf("expected no uploader, got %v, %v", u, err)
	}
}

func TestUploadCfgFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "frames")
	t.Setenv("S3_PREFIX", "")
	got := uploadCfgFromEnv(UploadCfg{Bucket: "cfg", Region: "eu-west-1", Prefix: "runs"})
	want := UploadCfg{Bucket: "frames", Region: "eu-west-1", Prefix: "runs"}
	if got.Bucket != want.Bucket || got.Region != want.Region || got.Prefix != want.Prefix {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUploaderUpload(t *testing.T) {
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "shadow.gif")
	pngPath := filepath.Join(dir, "frame_0.png")
	for _, p := range []string{gifPath, pngPath} {
		if err := os.WriteFile(p, []byte(filepath.Base(p)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fp := &fakePutter{}
	u := &Uploader{client: fp, bucket: "b", prefix: "runs/1"}
	if err := u.Upload(context.Background(), []string{gifPath, pngPath}); err != nil {
		t.Fatal(err)
	}
	if len(fp.keys) != 2 || fp.keys[0] != "runs/1/shadow.gif" || fp.keys[1] != "runs/1/frame_0.png" {
		t.Fatalf("keys: %v", fp.keys)
	}
	if fp.types[0] != "image/gif" || fp.types[1] != "image/png" {
		t.Fatalf("content types: %v", fp.types)
	}
	if string(fp.bodies[0]) != "shadow.gif" {
		t.Fatalf("body: %q", fp.bodies[0])
	}

	boom := errors.New("boom")
	u.client = &fakePutter{err: boom}
	if err := u.Upload(context.Background(), []string{gifPath}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := u.Upload(context.Background(), []string{filepath.Join(dir, "missing.gif")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestUploaderKey(t *testing.T) {
	u := &Uploader{}
	if k := u.Key("gifs/shadow.gif"); k != "shadow.gif" {
		t.Fatalf("key %q", k)
	}
	if ct := contentType("x.bin"); ct != "application/octet-stream" {
		t.Fatalf("content type %q", ct)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnv(dir); err != nil {
		t.Fatalf("missing .env: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PHOTONS2D_TEST_VAR=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PHOTONS2D_TEST_VAR") })
	if err := LoadEnv(dir); err != nil {
		t.Fatal(err)
	}
	if v := os.Getenv("PHOTONS2D_TEST_VAR"); v != "loaded" {
		t.Fatalf("env not loaded: %q", v)
	}
}
