package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"github.com/yungbote/studypath-backend/internal/logger"
	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

// VideoSearchService finds the single most relevant embeddable video
// for a query. An empty result is a valid outcome, not an error.
type VideoSearchService interface {
	FindBestVideo(ctx context.Context, query string) (videoID string, err error)
}

type youtubeSearchService struct {
	log *logger.Logger
	yt  *youtube.Service
}

func NewYouTubeSearchService(log *logger.Logger) (VideoSearchService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing YOUTUBE_API_KEY")
	}

	svc, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}

	return &youtubeSearchService{
		log: log.With("service", "YouTubeSearchService"),
		yt:  svc,
	}, nil
}

func (s *youtubeSearchService) FindBestVideo(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query required")
	}

	resp, err := s.yt.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		RelevanceLanguage("en").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube search: %w: %w", pkgerrors.ErrProviderUnavailable, err)
	}

	for _, item := range resp.Items {
		if item == nil || item.Id == nil {
			continue
		}
		if id := strings.TrimSpace(item.Id.VideoId); id != "" {
			return id, nil
		}
	}

	s.log.Debug("no embeddable video found", "query", query)
	return "", nil
}

// EmbedURL renders the player URL for a video id.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}
