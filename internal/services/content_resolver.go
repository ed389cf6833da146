package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/studypath-backend/internal/cache"
	types "github.com/yungbote/studypath-backend/internal/domain"
	"github.com/yungbote/studypath-backend/internal/logger"
	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

// ContentResolver orchestrates the two providers behind the three
// content operations. Subtopic and explanation lookups are memoized by
// learning-path identity; follow-up questions are never cached.
type ContentResolver interface {
	ResolveSubtopics(ctx context.Context, subject, topic string) ([]string, error)
	ResolveExplanation(ctx context.Context, key types.LearningPathKey) (*types.ExplanationResult, error)
	AnswerQuestion(ctx context.Context, key types.LearningPathKey, question string, history []types.QuestionHistoryItem) (*types.AnswerResult, error)
}

type ResolverConfig struct {
	// CacheTTL applies uniformly to both cached namespaces.
	CacheTTL time.Duration
	// MaxHistoryTurns bounds how many trailing Q/A pairs are replayed
	// into a follow-up prompt. <=0 means unbounded.
	MaxHistoryTurns int
}

type contentResolver struct {
	log   *logger.Logger
	store cache.Store
	ai    OpenAIClient
	video VideoSearchService
	cfg   ResolverConfig

	flight singleflight.Group
}

func NewContentResolver(log *logger.Logger, store cache.Store, ai OpenAIClient, video VideoSearchService, cfg ResolverConfig) (ContentResolver, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if store == nil || ai == nil || video == nil {
		return nil, fmt.Errorf("cache store, text client and video search required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &contentResolver{
		log:   log.With("service", "ContentResolver"),
		store: store,
		ai:    ai,
		video: video,
		cfg:   cfg,
	}, nil
}

// Cache keys live in disjoint namespaces per operation. Fields are
// query-escaped so a ":" inside a subject or topic cannot collide with
// the separator; matching stays case-sensitive and exact.
func subtopicsCacheKey(subject, topic string) string {
	return "subtopics:" + url.QueryEscape(subject) + ":" + url.QueryEscape(topic)
}

func explanationCacheKey(key types.LearningPathKey) string {
	return "explain:" + url.QueryEscape(key.Subject) + ":" + url.QueryEscape(key.Topic) + ":" + url.QueryEscape(key.Subtopic)
}

func (r *contentResolver) ResolveSubtopics(ctx context.Context, subject, topic string) ([]string, error) {
	if subject == "" || topic == "" {
		return nil, fmt.Errorf("subject and topic required: %w", pkgerrors.ErrInvalidArgument)
	}

	cacheKey := subtopicsCacheKey(subject, topic)
	if raw, ok, err := r.store.Get(ctx, cacheKey); err == nil && ok {
		var cached []string
		if uErr := json.Unmarshal(raw, &cached); uErr == nil {
			return cached, nil
		}
		r.log.Warn("dropping undecodable cache entry", "key", cacheKey)
	} else if err != nil {
		r.log.Warn("cache read failed, resolving fresh", "key", cacheKey, "error", err)
	}

	v, err, shared := r.flight.Do(cacheKey, func() (any, error) {
		raw, err := r.ai.GenerateText(ctx, tutorSystemInstruction, subtopicsPrompt(subject, topic))
		if err != nil {
			return nil, classifyGenerationErr(err)
		}
		subtopics, err := ExtractSubtopicList(raw)
		if err != nil {
			return nil, err
		}
		r.writeCache(ctx, cacheKey, subtopics)
		return subtopics, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.log.Debug("subtopics request coalesced", "key", cacheKey)
	}
	return v.([]string), nil
}

func (r *contentResolver) ResolveExplanation(ctx context.Context, key types.LearningPathKey) (*types.ExplanationResult, error) {
	if key.Subject == "" || key.Topic == "" || key.Subtopic == "" {
		return nil, fmt.Errorf("subject, topic and subtopic required: %w", pkgerrors.ErrInvalidArgument)
	}

	cacheKey := explanationCacheKey(key)
	if raw, ok, err := r.store.Get(ctx, cacheKey); err == nil && ok {
		var cached types.ExplanationResult
		if uErr := json.Unmarshal(raw, &cached); uErr == nil {
			return &cached, nil
		}
		r.log.Warn("dropping undecodable cache entry", "key", cacheKey)
	} else if err != nil {
		r.log.Warn("cache read failed, resolving fresh", "key", cacheKey, "error", err)
	}

	v, err, _ := r.flight.Do(cacheKey, func() (any, error) {
		result, err := r.fetchExplanation(ctx, key)
		if err != nil {
			return nil, err
		}
		r.writeCache(ctx, cacheKey, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.ExplanationResult), nil
}

// fetchExplanation fans out to both providers concurrently. The
// explanation text is required; the video is best-effort and degrades
// to a nil URL on miss or failure.
func (r *contentResolver) fetchExplanation(ctx context.Context, key types.LearningPathKey) (*types.ExplanationResult, error) {
	var (
		explanation string
		videoID     string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := r.ai.GenerateText(gctx, tutorSystemInstruction, explanationPrompt(key))
		if err != nil {
			return classifyGenerationErr(err)
		}
		explanation = text
		return nil
	})
	g.Go(func() error {
		query := fmt.Sprintf("%s %s %s education", key.Subject, key.Topic, key.Subtopic)
		id, err := r.video.FindBestVideo(gctx, query)
		if err != nil {
			// video is optional; never fail the whole request over it
			r.log.Warn("video search failed, degrading to no video",
				"subject", key.Subject, "topic", key.Topic, "subtopic", key.Subtopic, "error", err)
			return nil
		}
		videoID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &types.ExplanationResult{Explanation: explanation}
	if videoID != "" {
		u := EmbedURL(videoID)
		result.VideoURL = &u
	}
	return result, nil
}

func (r *contentResolver) AnswerQuestion(ctx context.Context, key types.LearningPathKey, question string, history []types.QuestionHistoryItem) (*types.AnswerResult, error) {
	if key.Subject == "" || key.Topic == "" || key.Subtopic == "" {
		return nil, fmt.Errorf("subject, topic and subtopic required: %w", pkgerrors.ErrInvalidArgument)
	}
	if question == "" {
		return nil, fmt.Errorf("question required: %w", pkgerrors.ErrInvalidArgument)
	}

	if r.cfg.MaxHistoryTurns > 0 && len(history) > r.cfg.MaxHistoryTurns {
		history = history[len(history)-r.cfg.MaxHistoryTurns:]
	}

	prompt := questionPrompt(key, BuildConversationContext(history), question)
	answer, err := r.ai.GenerateText(ctx, tutorSystemInstruction, prompt)
	if err != nil {
		return nil, classifyGenerationErr(err)
	}
	return &types.AnswerResult{Answer: answer}, nil
}

func (r *contentResolver) writeCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.log.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := r.store.Set(ctx, key, raw, r.cfg.CacheTTL); err != nil {
		// serve the fresh result anyway; only the memo is lost
		r.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// classifyGenerationErr keeps taxonomy sentinels intact and folds
// everything else under ErrContentGenerationFailed.
func classifyGenerationErr(err error) error {
	if errors.Is(err, pkgerrors.ErrProviderUnavailable) || errors.Is(err, pkgerrors.ErrInvalidProviderOutput) {
		return err
	}
	return fmt.Errorf("%w: %w", pkgerrors.ErrContentGenerationFailed, err)
}
