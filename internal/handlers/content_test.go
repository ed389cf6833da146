package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studypath-backend/internal/catalog"
	types "github.com/yungbote/studypath-backend/internal/domain"
	"github.com/yungbote/studypath-backend/internal/logger"
	pkgerrors "github.com/yungbote/studypath-backend/internal/pkg/errors"
)

type fakeResolver struct {
	subtopics   []string
	explanation *types.ExplanationResult
	answer      *types.AnswerResult
	err         error
}

func (f *fakeResolver) ResolveSubtopics(_ context.Context, subject, topic string) ([]string, error) {
	return f.subtopics, f.err
}

func (f *fakeResolver) ResolveExplanation(_ context.Context, key types.LearningPathKey) (*types.ExplanationResult, error) {
	return f.explanation, f.err
}

func (f *fakeResolver) AnswerQuestion(_ context.Context, key types.LearningPathKey, question string, history []types.QuestionHistoryItem) (*types.AnswerResult, error) {
	return f.answer, f.err
}

const testCatalogYAML = `
subjects:
  - name: Math
    topics:
      - Algebra
`

func newTestRouter(t *testing.T, resolver *fakeResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	router := gin.New()
	catalogHandler := NewCatalogHandler(cat)
	contentHandler := NewContentHandler(log, cat, resolver)
	router.GET("/subjects", catalogHandler.ListSubjects)
	router.GET("/subtopics/:subject/:topic", contentHandler.GetSubtopics)
	router.POST("/explain", contentHandler.Explain)
	router.POST("/question", contentHandler.AskQuestion)
	return router
}

func TestListSubjects(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body["Math"]) != 1 || body["Math"][0] != "Algebra" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGetSubtopics(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{subtopics: []string{"Foo", "Bar"}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subtopics/Math/Algebra", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var body []string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 2 || body[0] != "Foo" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGetSubtopics_UnknownTopic(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{subtopics: []string{"Foo"}})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subtopics/Math/Alchemy", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error != "unknown_topic" {
		t.Fatalf("unexpected error code %q", env.Error)
	}
}

func TestExplain(t *testing.T) {
	u := "https://www.youtube.com/embed/abc"
	router := newTestRouter(t, &fakeResolver{
		explanation: &types.ExplanationResult{Explanation: "text", VideoURL: &u},
	})
	body := bytes.NewBufferString(`{"subject":"Math","topic":"Algebra","subtopic":"Linear Equations"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/explain", body))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var res types.ExplanationResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Explanation != "text" || res.VideoURL == nil || *res.VideoURL != u {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExplain_NullVideoSerialized(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{
		explanation: &types.ExplanationResult{Explanation: "text"},
	})
	body := bytes.NewBufferString(`{"subject":"Math","topic":"Algebra","subtopic":"Linear Equations"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/explain", body))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["videoUrl"]) != "null" {
		t.Fatalf("videoUrl must serialize as null, got %s", raw["videoUrl"])
	}
}

func TestExplain_MissingField(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{})
	body := bytes.NewBufferString(`{"subject":"Math"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/explain", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestResolverErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"provider unavailable", pkgerrors.ErrProviderUnavailable, "provider_unavailable"},
		{"invalid output", pkgerrors.ErrInvalidProviderOutput, "invalid_provider_output"},
		{"generation failed", pkgerrors.ErrContentGenerationFailed, "content_generation_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, &fakeResolver{err: tc.err})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subtopics/Math/Algebra", nil))

			if w.Code != http.StatusBadGateway {
				t.Fatalf("status %d", w.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error != tc.wantCode {
				t.Fatalf("code %q, want %q", env.Error, tc.wantCode)
			}
		})
	}
}

func TestAskQuestion(t *testing.T) {
	router := newTestRouter(t, &fakeResolver{answer: &types.AnswerResult{Answer: "because"}})
	body := bytes.NewBufferString(`{
		"subject":"Math","topic":"Algebra","subtopic":"Linear Equations",
		"question":"Why?",
		"questionHistory":[{"question":"Q1","answer":"A1"}]
	}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/question", body))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	var res types.AnswerResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Answer != "because" {
		t.Fatalf("unexpected answer %q", res.Answer)
	}
}
