package storage

import (
	"fmt"
	"strings"
)

// AllowedContentTypes are the receipt formats accepted for upload.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// ValidateUpload checks content type and size.
func (s *MinIOStore) ValidateUpload(contentType string, sizeBytes int64) error {
	if err := ValidateContentType(contentType); err != nil {
		return err
	}
	return validateFileSize(sizeBytes, s.maxFileSize)
}

// ValidateContentType checks if the content type is allowed.
func ValidateContentType(contentType string) error {
	normalized := strings.Split(contentType, ";")[0]
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	if !AllowedContentTypes[normalized] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	return nil
}

func validateFileSize(sizeBytes, maxFileSize int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("file size must be greater than 0")
	}
	if maxFileSize > 0 && sizeBytes > maxFileSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", sizeBytes, maxFileSize)
	}
	return nil
}
