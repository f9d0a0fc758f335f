// Package instagram provides a minimal client for the Instagram Graph API.
package instagram

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"
)

const userAgent = "Instagram-MCP-Server/1.0"

// ErrNoChildren is returned when a carousel is created without any child
// container ids. The check happens before any request is issued.
var ErrNoChildren = errors.New("carousel requires at least one child container id")

// Client is a minimal HTTP client for the Instagram Graph API.
type Client struct {
    BaseURL     string
    APIVersion  string
    AccountID   string
    AccessToken string
    HTTP        *http.Client
}

// New returns a new client. If httpClient is nil, a default with 30s timeout is used.
func New(baseURL, apiVersion, accountID, accessToken string, httpClient *http.Client) *Client {
    if httpClient == nil {
        httpClient = &http.Client{Timeout: 30 * time.Second}
    }
    return &Client{
        BaseURL:     strings.TrimRight(baseURL, "/"),
        APIVersion:  apiVersion,
        AccountID:   accountID,
        AccessToken: accessToken,
        HTTP:        httpClient,
    }
}

// APIError is a non-2xx response from the Graph API. Status and body are kept
// verbatim so callers see exactly what the remote returned.
type APIError struct {
    StatusCode int
    Body       string
}

func (e *APIError) Error() string {
    return fmt.Sprintf("instagram api status %d: %s", e.StatusCode, e.Body)
}

// RefreshAccessToken requests a new long-lived access token for the account,
// extending its validity period. The response includes the new token and its
// expiry and is passed through unmodified.
func (c *Client) RefreshAccessToken(ctx context.Context) (map[string]any, error) {
    q := url.Values{}
    q.Set("grant_type", "ig_refresh_token")
    q.Set("access_token", c.AccessToken)
    return c.getJSON(ctx, c.endpoint("refresh_access_token"), q)
}

// CreateImageContainer stages a single image on the account and returns the
// media container id. Caption may be empty.
func (c *Client) CreateImageContainer(ctx context.Context, imageURL, caption string) (string, error) {
    if imageURL == "" {
        return "", errors.New("image url missing")
    }
    form := url.Values{}
    form.Set("image_url", imageURL)
    if caption != "" {
        form.Set("caption", caption)
    }
    form.Set("access_token", c.AccessToken)
    return c.postContainer(ctx, c.endpoint(c.AccountID, "media"), form)
}

// CreateCarouselContainer stages a carousel referencing previously created
// child containers and returns the carousel container id.
func (c *Client) CreateCarouselContainer(ctx context.Context, caption string, children []string) (string, error) {
    if len(children) == 0 {
        return "", ErrNoChildren
    }
    form := url.Values{}
    form.Set("media_type", "CAROUSEL")
    form.Set("children", strings.Join(children, ","))
    if caption != "" {
        form.Set("caption", caption)
    }
    form.Set("access_token", c.AccessToken)
    return c.postContainer(ctx, c.endpoint(c.AccountID, "media"), form)
}

// PublishContainer publishes a previously staged container and returns the
// resulting post id.
func (c *Client) PublishContainer(ctx context.Context, containerID string) (string, error) {
    if containerID == "" {
        return "", errors.New("media container id missing")
    }
    form := url.Values{}
    form.Set("creation_id", containerID)
    form.Set("access_token", c.AccessToken)
    return c.postContainer(ctx, c.endpoint(c.AccountID, "media_publish"), form)
}

// AccountInfo fetches the account type, media count, and follower count.
func (c *Client) AccountInfo(ctx context.Context) (map[string]any, error) {
    q := url.Values{}
    q.Set("fields", "account_type,media_count,followers_count")
    q.Set("access_token", c.AccessToken)
    return c.getJSON(ctx, c.endpoint(c.AccountID), q)
}

// RecentMedia lists recent posts for the account, newest first.
// A limit of zero or less means the Graph API default of 10.
func (c *Client) RecentMedia(ctx context.Context, limit int) (map[string]any, error) {
    if limit <= 0 {
        limit = 10
    }
    q := url.Values{}
    q.Set("fields", "id,caption,media_type,media_url,timestamp,permalink")
    q.Set("limit", fmt.Sprintf("%d", limit))
    q.Set("access_token", c.AccessToken)
    return c.getJSON(ctx, c.endpoint(c.AccountID, "media"), q)
}

// endpoint joins the versioned API path for the given segments.
func (c *Client) endpoint(segments ...string) string {
    return c.BaseURL + "/" + c.APIVersion + "/" + strings.Join(segments, "/")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values) (map[string]any, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
    if err != nil {
        return nil, err
    }
    body, err := c.do(req)
    if err != nil {
        return nil, err
    }
    var out map[string]any
    if err := json.Unmarshal(body, &out); err != nil {
        return nil, fmt.Errorf("decoding response: %w", err)
    }
    return out, nil
}

func (c *Client) postContainer(ctx context.Context, endpoint string, form url.Values) (string, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
    if err != nil {
        return "", err
    }
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    body, err := c.do(req)
    if err != nil {
        return "", err
    }
    var out struct {
        ID string `json:"id"`
    }
    if err := json.Unmarshal(body, &out); err != nil {
        return "", fmt.Errorf("decoding response: %w", err)
    }
    if out.ID == "" {
        return "", fmt.Errorf("no container id in response: %s", body)
    }
    return out.ID, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
    req.Header.Set("User-Agent", userAgent)
    req.Header.Set("Accept", "application/json")
    resp, err := c.HTTP.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, err
    }
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
    }
    return body, nil
}
