package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comment-pulse/internal/models"
	"comment-pulse/shared/config"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrCommentsUnavailable indicates the provider rejected or failed the
// comment fetch (private video, comments disabled, not found, quota).
var ErrCommentsUnavailable = errors.New("comments unavailable for this video")

const fetchTimeout = 30 * time.Second

// Client fetches top-level comments through the YouTube Data API.
type Client struct {
	service     *youtube.Service
	maxComments int64
}

func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:     service,
		maxComments: cfg.MaxComments,
	}, nil
}

// FetchTopLevelComments retrieves a single page of top-level comments
// for the given video id, newest first as returned by the provider.
// There is no pagination beyond the configured page size.
func (c *Client) FetchTopLevelComments(ctx context.Context, videoID string) ([]models.RawComment, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	response, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(c.maxComments).
		TextFormat("plainText").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: provider returned %d: %s", ErrCommentsUnavailable, apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrCommentsUnavailable, err)
	}

	comments := make([]models.RawComment, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := item.Snippet.TopLevelComment.Snippet

		comment := models.RawComment{
			Author: snippet.AuthorDisplayName,
			Text:   snippet.TextDisplay,
		}
		if publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			comment.PublishedAt = publishedAt
		}

		comments = append(comments, comment)
	}

	return comments, nil
}
