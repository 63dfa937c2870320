package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tube-chat/domain/model"
	"tube-chat/domain/repository"
	"tube-chat/infrastructure/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const oembedEndpoint = "https://www.youtube.com/oembed"

// Config represents YouTube API configuration
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIKey       string `json:"api_key"`
}

// Client fetches video metadata with a two-tier strategy: the Data API when a
// credential is configured, degrading to the public oEmbed endpoint on
// failure or when no credential exists. Every fetch first waits on the
// metadata rate limiter.
type Client struct {
	service     *youtube.Service // nil in fallback-only mode
	limiter     repository.IRateLimiter
	httpClient  *http.Client
	oauthConfig *oauth2.Config
	token       *oauth2.Token
	ctx         context.Context
}

var _ repository.IVideoMetadata = (*Client)(nil)

// NewMetadataClient creates a new metadata client. With OAuth tokens it runs
// in full OAuth mode; with only an API key it runs in read-only key mode; with
// neither, every fetch goes straight to the oEmbed fallback.
func NewMetadataClient(ctx context.Context, config *Config, limiter repository.IRateLimiter) (*Client, error) {
	client := &Client{
		limiter:    limiter,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		ctx:        ctx,
	}

	if config.AccessToken == "" || config.RefreshToken == "" {
		if config.APIKey == "" {
			logger.GetLogger().Warn("No YouTube credential configured; metadata will come from the oEmbed fallback only")
			return client, nil
		}
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		client.service = service
		return client, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       []string{youtube.YoutubeReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
	}
	service, err := youtube.NewService(ctx, option.WithHTTPClient(oauth2Config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	client.service = service
	client.oauthConfig = oauth2Config
	client.token = token
	return client, nil
}

// GetVideoMetadata returns normalized metadata for a video ID. A degraded
// oEmbed record is a valid result; an error means even the fallback failed.
func (c *Client) GetVideoMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	if err := c.limiter.AwaitSlot(ctx); err != nil {
		return nil, fmt.Errorf("metadata rate limit wait aborted: %w", err)
	}

	if c.service != nil {
		meta, err := c.fetchFromDataAPI(ctx, videoID)
		if err == nil {
			return meta, nil
		}
		entry := logger.GetLogger().WithField("videoId", videoID).WithField("error", err)
		if isQuotaExceeded(err) {
			entry.Warn("YouTube Data API quota exceeded, falling back to oEmbed")
		} else {
			entry.Warn("YouTube Data API metadata fetch failed, falling back to oEmbed")
		}
	}

	return c.fetchFromOEmbed(ctx, videoID)
}

func (c *Client) fetchFromDataAPI(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	if err := c.refreshTokenIfNeeded(); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	call := c.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics", "status", "recordingDetails", "liveStreamingDetails"}).
		Id(videoID).
		Context(ctx)
	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}
	return convertToVideoMetadata(response.Items[0]), nil
}

// convertToVideoMetadata maps a Data API video to our model with explicit
// fallbacks for absent fields.
func convertToVideoMetadata(video *youtube.Video) *model.VideoMetadata {
	meta := &model.VideoMetadata{
		VideoID: video.Id,
		Title:   model.DefaultTitle,
		Author:  model.DefaultAuthor,
		URL:     watchURL(video.Id),
	}

	if video.Snippet != nil {
		if video.Snippet.Title != "" {
			meta.Title = video.Snippet.Title
		}
		if video.Snippet.ChannelTitle != "" {
			meta.Author = video.Snippet.ChannelTitle
		}
		meta.ChannelID = video.Snippet.ChannelId
		meta.Description = video.Snippet.Description
		meta.Tags = video.Snippet.Tags
		meta.Language = video.Snippet.DefaultAudioLanguage
		meta.LiveBroadcast = video.Snippet.LiveBroadcastContent
		if publishedAt, err := time.Parse(time.RFC3339, video.Snippet.PublishedAt); err == nil {
			meta.PublishedAt = publishedAt
		}
		meta.Thumbnail = pickThumbnail(video.Snippet.Thumbnails)
	}
	if video.ContentDetails != nil {
		meta.DurationSec = ParseISODuration(video.ContentDetails.Duration)
		meta.Definition = video.ContentDetails.Definition
		meta.HasCaptions = video.ContentDetails.Caption == "true"
	}
	if video.Statistics != nil {
		meta.ViewCount = int64(video.Statistics.ViewCount)
		meta.LikeCount = int64(video.Statistics.LikeCount)
		meta.CommentCount = int64(video.Statistics.CommentCount)
	}
	return meta
}

// pickThumbnail selects by descending preference: maxres, high, medium, default.
func pickThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	switch {
	case thumbnails.Maxres != nil:
		return thumbnails.Maxres.Url
	case thumbnails.High != nil:
		return thumbnails.High.Url
	case thumbnails.Medium != nil:
		return thumbnails.Medium.Url
	case thumbnails.Default != nil:
		return thumbnails.Default.Url
	}
	return ""
}

// fetchFromOEmbed hits the public embed-metadata endpoint, which needs no
// credential but returns only title, author and thumbnail. All other fields
// stay at their zero defaults; the record is still valid metadata.
func (c *Client) fetchFromOEmbed(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	endpoint := fmt.Sprintf("%s?format=json&url=%s", oembedEndpoint, url.QueryEscape(watchURL(videoID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oEmbed request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oEmbed metadata: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oEmbed endpoint returned status %d for video %s", resp.StatusCode, videoID)
	}

	var payload struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode oEmbed response: %w", err)
	}

	meta := &model.VideoMetadata{
		VideoID:   videoID,
		Title:     model.DefaultTitle,
		Author:    model.DefaultAuthor,
		Thumbnail: payload.ThumbnailURL,
		URL:       watchURL(videoID),
	}
	if payload.Title != "" {
		meta.Title = payload.Title
	}
	if payload.AuthorName != "" {
		meta.Author = payload.AuthorName
	}
	return meta, nil
}

// isQuotaExceeded detects the Data API quota condition: HTTP 403 with a
// quota-related reason or message.
func isQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		return false
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
		return true
	}
	for _, item := range apiErr.Errors {
		if strings.Contains(strings.ToLower(item.Reason), "quota") {
			return true
		}
	}
	return false
}

// refreshTokenIfNeeded checks if the OAuth token is expired and refreshes it
// automatically. In API key or fallback-only mode there is nothing to do.
func (c *Client) refreshTokenIfNeeded() error {
	if c.oauthConfig == nil || c.token == nil {
		return nil
	}
	if c.token.Expiry.IsZero() || time.Until(c.token.Expiry) < 5*time.Minute {
		newToken, err := c.oauthConfig.TokenSource(c.ctx, c.token).Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		service, err := youtube.NewService(c.ctx, option.WithHTTPClient(c.oauthConfig.Client(c.ctx, newToken)))
		if err != nil {
			return fmt.Errorf("failed to recreate YouTube service with refreshed token: %w", err)
		}
		c.service = service
		logger.GetLogger().WithField("expiry", newToken.Expiry).Info("YouTube OAuth token refreshed")
	}
	return nil
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
