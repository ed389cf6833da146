package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studypath-backend/internal/catalog"
	types "github.com/yungbote/studypath-backend/internal/domain"
	"github.com/yungbote/studypath-backend/internal/logger"
	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
	"github.com/yungbote/studypath-backend/internal/services"
)

type ContentHandler struct {
	log      *logger.Logger
	cat      *catalog.Catalog
	resolver services.ContentResolver
}

func NewContentHandler(log *logger.Logger, cat *catalog.Catalog, resolver services.ContentResolver) *ContentHandler {
	return &ContentHandler{
		log:      log.With("handler", "ContentHandler"),
		cat:      cat,
		resolver: resolver,
	}
}

func (h *ContentHandler) GetSubtopics(c *gin.Context) {
	subject := c.Param("subject")
	topic := c.Param("topic")
	if !h.cat.HasTopic(subject, topic) {
		RespondError(c, http.StatusBadRequest, "unknown_topic", errors.New("subject/topic is not in the catalog"))
		return
	}

	subtopics, err := h.resolver.ResolveSubtopics(c.Request.Context(), subject, topic)
	if err != nil {
		h.log.Error("GetSubtopics failed", "subject", subject, "topic", topic, "error", err)
		h.respondResolverError(c, err)
		return
	}
	RespondOK(c, subtopics)
}

type explainRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
	Subtopic string `json:"subtopic" binding:"required"`
}

func (h *ContentHandler) Explain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	key := types.LearningPathKey{Subject: req.Subject, Topic: req.Topic, Subtopic: req.Subtopic}
	result, err := h.resolver.ResolveExplanation(c.Request.Context(), key)
	if err != nil {
		h.log.Error("Explain failed", "subject", key.Subject, "topic", key.Topic, "subtopic", key.Subtopic, "error", err)
		h.respondResolverError(c, err)
		return
	}
	RespondOK(c, result)
}

type questionRequest struct {
	Subject         string                      `json:"subject" binding:"required"`
	Topic           string                      `json:"topic" binding:"required"`
	Subtopic        string                      `json:"subtopic" binding:"required"`
	Question        string                      `json:"question" binding:"required"`
	QuestionHistory []types.QuestionHistoryItem `json:"questionHistory"`
}

func (h *ContentHandler) AskQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	key := types.LearningPathKey{Subject: req.Subject, Topic: req.Topic, Subtopic: req.Subtopic}
	result, err := h.resolver.AnswerQuestion(c.Request.Context(), key, req.Question, req.QuestionHistory)
	if err != nil {
		h.log.Error("AskQuestion failed", "subject", key.Subject, "topic", key.Topic, "subtopic", key.Subtopic, "error", err)
		h.respondResolverError(c, err)
		return
	}
	RespondOK(c, result)
}

// respondResolverError maps the resolver taxonomy onto terminal HTTP
// responses. Every failure kind gets a distinct code; the status stays
// coarse because the UI only shows a retry prompt.
func (h *ContentHandler) respondResolverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, pkgerrors.ErrInvalidProviderOutput):
		RespondError(c, http.StatusBadGateway, "invalid_provider_output", err)
	case errors.Is(err, pkgerrors.ErrProviderUnavailable):
		RespondError(c, http.StatusBadGateway, "provider_unavailable", err)
	case errors.Is(err, pkgerrors.ErrContentGenerationFailed):
		RespondError(c, http.StatusBadGateway, "content_generation_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
