package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestArchivePut(t *testing.T) {
	fp := &fakePutter{}
	a := &Archive{client: fp, bucket: "reports", baseURL: "https://cdn.example.com"}

	url, err := a.Put(context.Background(), "bookings/2026-10.xlsx", XLSXContentType, []byte("xlsx"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/bookings/2026-10.xlsx" {
		t.Errorf("unexpected url %q", url)
	}
	if aws.ToString(fp.in.Bucket) != "reports" || aws.ToString(fp.in.ContentType) != XLSXContentType {
		t.Errorf("unexpected input %+v", fp.in)
	}
	if string(fp.body) != "xlsx" {
		t.Errorf("unexpected body %q", fp.body)
	}
}

func TestArchivePutWithoutPublicURL(t *testing.T) {
	a := &Archive{client: &fakePutter{}, bucket: "reports"}
	url, err := a.Put(context.Background(), "k.xlsx", XLSXContentType, nil)
	if err != nil || url != "s3://reports/k.xlsx" {
		t.Fatalf("unexpected result %q, %v", url, err)
	}
}

func TestArchivePutError(t *testing.T) {
	a := &Archive{client: &fakePutter{err: errors.New("denied")}, bucket: "reports"}
	if _, err := a.Put(context.Background(), "k", XLSXContentType, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewArchiveDisabled(t *testing.T) {
	if _, err := NewArchive(context.Background(), Options{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
