package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firmdesk/internal/config"
	"firmdesk/internal/port"
)

func TestLocalTextPlainFile(t *testing.T) {
	text := LocalText([]byte("hello world"), "text/plain", "note.txt")
	assert.Equal(t, "hello world", text)
}

func TestLocalTextNeverEmpty(t *testing.T) {
	cases := []struct {
		name        string
		fileBytes   []byte
		contentType string
	}{
		{"empty pdf", nil, "application/pdf"},
		{"garbage pdf", []byte("not a pdf"), "application/pdf"},
		{"image", []byte{0xFF, 0xD8}, "image/jpeg"},
		{"docx", []byte("PK"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := LocalText(tc.fileBytes, tc.contentType, "file.bin")
			assert.NotEmpty(t, strings.TrimSpace(text))
		})
	}
}

func TestExtractUsesProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		resp := map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": "Form W-2 Wage and Tax Statement"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	extractor := NewExtractorWithEndpoint(&config.AIProviderConfig{
		APIKey:      "test-key",
		Model:       "test-model",
		TimeoutSecs: 5,
	}, server.URL)

	text, err := extractor.Extract(context.Background(), port.ExtractInput{
		FileURL:     "https://example.com/doc.pdf",
		ContentType: "application/pdf",
		FileName:    "doc.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Form W-2 Wage and Tax Statement", text)
}

func TestExtractFallsBackWhenProviderFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := NewExtractorWithEndpoint(&config.AIProviderConfig{
		APIKey:      "test-key",
		Model:       "test-model",
		TimeoutSecs: 5,
	}, server.URL)

	text, err := extractor.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("raw statement text"),
		ContentType: "text/plain",
		FileName:    "statement.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, "raw statement text", text)
}
