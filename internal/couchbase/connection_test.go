package couchbase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionString(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{url: "couchbase://localhost", expected: "couchbase://localhost"},
		{url: "couchbases://cb.example.com", expected: "couchbases://cb.example.com"},
		{url: "http://localhost", expected: "couchbase://localhost"},
		{url: "https://cb.example.com", expected: "couchbases://cb.example.com"},
		{url: "localhost", expected: "couchbase://localhost"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, connectionString(tt.url), tt.url)
	}
}

func TestOperationResult(t *testing.T) {
	assert.Equal(t, "success", operationResult(nil))
	assert.Equal(t, "not_found", operationResult(ErrDocumentNotFound))
	assert.Equal(t, "error", operationResult(ErrDocumentDecode))
	assert.Equal(t, "error", operationResult(ErrLockHeld))
}
