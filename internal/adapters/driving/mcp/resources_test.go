package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "papis://documents/lecun2015",
			expected: "lecun2015",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/lecun2015",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "papis://documents/a/b",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists all documents", func(t *testing.T) {
		server, err := NewServer(&Ports{SearchProvider: newLibraryProvider()})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("papis://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "lecun2015")
		assert.Contains(t, result.Contents[0].Text, "Attention Is All You Need")
	})

	t.Run("empty library", func(t *testing.T) {
		server, err := NewServer(&Ports{SearchProvider: &mockSearchProvider{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("papis://documents"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{SearchProvider: newLibraryProvider()})
	require.NoError(t, err)

	t.Run("returns document meta", func(t *testing.T) {
		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("papis://documents/lecun2015"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "Deep Learning")
		assert.Contains(t, result.Contents[0].Text, "Deep learning allows...")
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("papis://documents/missing"))

		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("papis://other"))

		assert.Error(t, err)
	})
}
