package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
	pngHeader   = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func createRawJSONHTTPRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// createMultipartRequest fields 的每個值都寫成獨立欄位；image 為 nil 時不附檔案
func createMultipartRequest(t *testing.T, url string, fields map[string][]string, image []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, writer.WriteField(name, v))
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "banner.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func validEventFields() map[string][]string {
	return map[string][]string{
		"title":       {"Go Conference 2025"},
		"description": {"A conference about Go"},
		"overview":    {"Talks and workshops"},
		"venue":       {"Main Hall"},
		"location":    {"Taipei"},
		"date":        {"2025-11-20"},
		"time":        {"9:30 AM"},
		"mode":        {"offline"},
		"audience":    {"developers"},
		"organizer":   {"Gophers TW"},
		"agenda":      {"Keynote", "Lunch"},
		"tags":        {"go, backend"},
	}
}
