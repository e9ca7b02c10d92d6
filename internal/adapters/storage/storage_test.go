package storage

import (
	"strings"
	"testing"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"application/pdf", false},
		{"image/JPEG", false},
		{"image/png; charset=binary", false},
		{"text/html", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateContentType(tt.contentType)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ValidateContentType(%q) error = %v, wantErr %v", tt.contentType, err, tt.wantErr)
		}
	}
}

func TestValidateUploadSize(t *testing.T) {
	s := &MinIOStore{maxFileSize: 1024}
	if err := s.ValidateUpload("application/pdf", 1024); err != nil {
		t.Fatalf("expected limit to be inclusive, got %v", err)
	}
	if err := s.ValidateUpload("application/pdf", 1025); err == nil {
		t.Fatal("expected oversize upload to fail")
	}
	if err := s.ValidateUpload("application/pdf", 0); err == nil {
		t.Fatal("expected empty upload to fail")
	}
}

func TestObjectKey(t *testing.T) {
	key := objectKey("payments/abc", `C:\scans\Receipt 01.PDF`)
	if !strings.HasPrefix(key, "payments/abc/Receipt 01_") {
		t.Fatalf("unexpected key %q", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Fatalf("expected lower-case extension, got %q", key)
	}

	if key := objectKey("p", "../../etc/passwd"); !strings.HasPrefix(key, "p/passwd_") {
		t.Fatalf("expected traversal to be stripped, got %q", key)
	}
}
