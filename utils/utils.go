package utils

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"dormly/types"

	"github.com/gofiber/fiber/v2"
)

var (
	passwordField = regexp.MustCompile(`("(?:password|card_token|token)"\s*:\s*)"(?:[^"\\]|\\.)*"`)
	authHeader    = regexp.MustCompile(`(?im)^(Authorization|Cookie|Set-Cookie):[^\r\n]*`)
)

// redactSecrets blanks credentials in a JSON body.
func redactSecrets(body string) string {
	return passwordField.ReplaceAllString(body, `$1"[REDACTED]"`)
}

// redactHeaders blanks credential headers in a raw header block.
func redactHeaders(raw string) string {
	return authHeader.ReplaceAllString(raw, "$1: [REDACTED]")
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return redactSecrets(string(jsonBytes))
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return redactSecrets(body)
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for
// logging. Credentials are redacted from bodies and headers.
func CreateSanitizedLogEntry(c *fiber.Ctx, userID *uint, elapsed time.Duration) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := redactSecrets(string(append([]byte(nil), c.Response().Body()...)))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  redactHeaders(string(requestHeaders)),
		ResponseHeaders: redactHeaders(string(responseHeaders)),
		StatusCode:      c.Response().StatusCode(),
		UserID:          userID,
		DurationMs:      elapsed.Milliseconds(),
		CreatedAt:       time.Now(),
	}
}
