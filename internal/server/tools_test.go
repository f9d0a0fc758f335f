package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolTestServer(t *testing.T, handler http.HandlerFunc) (*Server, *int) {
	t.Helper()
	calls := 0
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(graph.Close)
	return New(testConfig(graph.URL)), &calls
}

func toolText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestUploadImageTool(t *testing.T) {
	s, calls := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/17841400000000000/media", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "tok", r.PostFormValue("access_token"))
		w.Write([]byte(`{"id":"111"}`))
	})

	res, _, err := s.handleUploadImage(context.Background(), nil, UploadImageArgs{ImageURL: "https://example.com/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "Image uploaded successfully. Media ID: 111", toolText(t, res))
	assert.Equal(t, 1, *calls, "expected exactly one outbound call")
}

func TestUploadCaptionedImageTool(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "a caption", r.PostFormValue("caption"))
		w.Write([]byte(`{"id":"222"}`))
	})

	res, _, err := s.handleUploadCaptionedImage(context.Background(), nil, UploadCaptionedImageArgs{
		ImageURL: "https://example.com/a.jpg",
		Caption:  "a caption",
	})
	require.NoError(t, err)
	assert.Equal(t, "Image with caption uploaded successfully. Media ID: 222", toolText(t, res))
}

func TestUploadCarouselToolEmptyChildren(t *testing.T) {
	s, calls := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"333"}`))
	})

	_, _, err := s.handleUploadCarousel(context.Background(), nil, CarouselArgs{Caption: "trip"})
	require.Error(t, err)
	assert.Equal(t, 0, *calls, "empty carousel must not reach the remote API")
}

func TestUploadCarouselTool(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "CAROUSEL", r.PostFormValue("media_type"))
		assert.Equal(t, "111,222", r.PostFormValue("children"))
		w.Write([]byte(`{"id":"333"}`))
	})

	res, _, err := s.handleUploadCarousel(context.Background(), nil, CarouselArgs{
		Caption:     "trip",
		ChildrenIDs: []string{"111", "222"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Carousel post uploaded successfully. Media ID: 333", toolText(t, res))
}

func TestPublishTool(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/17841400000000000/media_publish", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "333", r.PostFormValue("creation_id"))
		w.Write([]byte(`{"id":"999"}`))
	})

	res, _, err := s.handlePublish(context.Background(), nil, PublishArgs{MediaID: "333"})
	require.NoError(t, err)
	assert.Equal(t, "Media published successfully. Post ID: 999", toolText(t, res))
}

func TestRemoteErrorSurfaced(t *testing.T) {
	remoteBody := `{"error":{"message":"Media ID is not available","code":9007}}`
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(remoteBody))
	})

	_, _, err := s.handlePublish(context.Background(), nil, PublishArgs{MediaID: "333"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), remoteBody)
}

func TestRefreshTokenTool(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/refresh_access_token", r.URL.Path)
		w.Write([]byte(`{"access_token":"new-token","expires_in":5184000}`))
	})

	res, _, err := s.handleRefreshToken(context.Background(), nil, NoArgs{})
	require.NoError(t, err)
	assert.Contains(t, toolText(t, res), "Access token refreshed successfully")
}

func TestRecentMediaTool(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[{"id":"1"},{"id":"2"},{"id":"3"}]}`))
	})

	res, _, err := s.handleRecentMedia(context.Background(), nil, RecentMediaArgs{Limit: 3})
	require.NoError(t, err)
	assert.Contains(t, toolText(t, res), "Recent Media:")
}

// bearerTransport injects the Authorization header on every request the MCP
// client makes, covering both the SSE stream and the message posts.
type bearerTransport struct {
	token string
}

func (bt *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+bt.token)
	return http.DefaultTransport.RoundTrip(req)
}

func TestEndToEndOverSSE(t *testing.T) {
	s, _ := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"account_type":"BUSINESS","media_count":42,"followers_count":1000}`))
	})
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.SSEClientTransport{
		Endpoint:   ts.URL + "/sse",
		HTTPClient: &http.Client{Transport: &bearerTransport{token: "x"}},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	list, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	names := make([]string, 0, len(list.Tools))
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"refresh_instagram_access_token",
		"upload_image_without_caption",
		"upload_image_with_caption",
		"upload_carousel_post",
		"publish_media_container",
		"get_instagram_account_info",
		"get_recent_media",
	}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_instagram_account_info",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, toolText(t, res), "Account Info:")
}

func TestSSEConnectRejectsWrongBearer(t *testing.T) {
	s, calls := newToolTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	_, err := client.Connect(context.Background(), &mcp.SSEClientTransport{
		Endpoint:   ts.URL + "/sse",
		HTTPClient: &http.Client{Transport: &bearerTransport{token: "wrong"}},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
}
