package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var allowedEvidenceExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
	".txt":  true,
}

// ValidateEvidenceFilename checks the extension against the backend's
// allowed evidence types
func ValidateEvidenceFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedEvidenceExts[ext] {
		return fmt.Errorf("unsupported file type: %s (allowed: png, jpg, jpeg, pdf, txt)", ext)
	}
	return nil
}

// ValidateFileID validates case file id format (uuid + extension, assigned
// by the backend at upload time)
func ValidateFileID(fileID string) error {
	if fileID == "" {
		return fmt.Errorf("file id cannot be empty")
	}
	// uuid.ext atau id opaque lain, yang penting tidak ada path traversal
	if strings.ContainsAny(fileID, "/\\") || strings.Contains(fileID, "..") {
		return fmt.Errorf("invalid file id format")
	}
	return nil
}

// ValidateBatchID validates batch id format
func ValidateBatchID(batchID string) error {
	if batchID == "" {
		return fmt.Errorf("batch id cannot be empty")
	}
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, batchID)
	if !matched {
		return fmt.Errorf("invalid batch id format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
