package supabase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/storage/v1/object/user-documents/u1/notes.pdf", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pdf bytes"))
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "service-key", "user-documents")

	data, err := client.Download(context.Background(), "u1/notes.pdf")
	require.NoError(t, err)

	assert.Equal(t, []byte("pdf bytes"), data)
	assert.Equal(t, "Bearer service-key", gotAuth)
}

func TestDownloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "service-key", "user-documents")

	data, err := client.Download(context.Background(), "u1/missing.pdf")
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "status 404")
}

func TestUpload(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/user-documents/u1/new.docx", r.URL.Path)

		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "service-key", "user-documents")

	err := client.Upload(context.Background(), "u1/new.docx", []byte("docx bytes"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.NoError(t, err)

	assert.Equal(t, []byte("docx bytes"), gotBody)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", gotContentType)
}

func TestUploadConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Duplicate"}`))
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "service-key", "user-documents")

	err := client.Upload(context.Background(), "u1/dup.pdf", []byte("x"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
}

func TestRemove(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewStorageClient(srv.URL, "service-key", "user-documents")

	require.NoError(t, client.Remove(context.Background(), "u1/old.pdf"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/user-documents/u1/old.pdf", gotPath)
}
