package mailbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// newStubClient builds a Client whose Gmail service talks to a stub server
func newStubClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return &Client{svc: svc, pageSize: DefaultPageSize}, ts
}

func TestListCandidates_EmptyResultIsNotAnError(t *testing.T) {
	var gotQuery string
	c, ts := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultSizeEstimate":0}`))
	})
	defer ts.Close()

	refs, err := c.ListCandidates(context.Background(), "Backend Engineer")
	require.NoError(t, err)
	assert.Empty(t, refs)
	assert.Contains(t, gotQuery, "is:unread")
	assert.Contains(t, gotQuery, `"Backend Engineer"`)
}

func TestListCandidates_ReturnsRefs(t *testing.T) {
	c, ts := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"m1","threadId":"t1"},{"id":"m2","threadId":"t2"}]}`))
	})
	defer ts.Close()

	refs, err := c.ListCandidates(context.Background(), "Backend Engineer")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "m1", refs[0].ID)
	assert.Equal(t, "t2", refs[1].ThreadID)
}

func TestFetchMetadata_ParsesHeaders(t *testing.T) {
	c, ts := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "metadata", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "m1",
			"payload": {"headers": [
				{"name": "From", "value": "Jane Doe <jane@example.com>"},
				{"name": "Subject", "value": "Backend Engineer application"}
			]}
		}`))
	})
	defer ts.Close()

	meta, err := c.FetchMetadata(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe <jane@example.com>", meta.From)
	assert.Equal(t, "Backend Engineer application", meta.Subject)
}

func TestFetchContent_NotFound(t *testing.T) {
	c, ts := newStubClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
	})
	defer ts.Close()

	_, err := c.FetchContent(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, IsMessageNotFound(err))
	assert.Contains(t, err.Error(), "gone")
}

func TestMarkProcessed_RemovesUnreadLabel(t *testing.T) {
	var gotBody string
	c, ts := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/modify") {
			buf := make([]byte, r.ContentLength)
			_, _ = r.Body.Read(buf)
			gotBody = string(buf)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m1"}`))
	})
	defer ts.Close()

	err := c.MarkProcessed(context.Background(), "m1")
	require.NoError(t, err)
	assert.Contains(t, gotBody, "UNREAD")
}
