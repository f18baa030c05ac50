package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"story-production-api/application/ports/outbound"
	"story-production-api/domain"
	"story-production-api/middleware"

	"github.com/gin-gonic/gin"
)

type memoryProjectStore struct {
	records map[string]outbound.ProjectRecord
}

func newMemoryProjectStore() *memoryProjectStore {
	return &memoryProjectStore{records: make(map[string]outbound.ProjectRecord)}
}

func (m *memoryProjectStore) Upsert(ctx context.Context, record outbound.ProjectRecord) error {
	m.records[record.ID] = record
	return nil
}

func (m *memoryProjectStore) Get(ctx context.Context, id string) (*outbound.ProjectRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, outbound.ErrProjectNotFound
	}
	return &record, nil
}

func (m *memoryProjectStore) ListByUser(ctx context.Context, userID string) ([]outbound.ProjectRecord, error) {
	var records []outbound.ProjectRecord
	for _, record := range m.records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *memoryProjectStore) Delete(ctx context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type stubPublisher struct {
	published []string
}

func (s *stubPublisher) Publish(ctx context.Context, projectID string, story domain.StoryData) (string, error) {
	s.published = append(s.published, projectID)
	return "https://showcase.example.com/" + projectID + ".json", nil
}

func newProjectsRouter(store outbound.ProjectStorePort, publisher outbound.ShowcasePublisherPort, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	})
	NewProjectsController(testLogger{}, store, publisher).RegisterRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSaveProject_CreatesWithFreshID(t *testing.T) {
	store := newMemoryProjectStore()
	router := newProjectsRouter(store, &stubPublisher{}, "user-1")

	recorder := doJSON(router, http.MethodPut, "/projects", `{"title":"My Story","content":{"title":"My Story","scenes":[{"id":"scene-0","narration":"n","visualPrompt":"v"}]}}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored project, got %d", len(store.records))
	}
	for _, record := range store.records {
		if record.UserID != "user-1" {
			t.Fatalf("project stored with wrong owner: %s", record.UserID)
		}
		if record.Content.LastSaved == 0 {
			t.Fatal("saved content must carry a lastSaved stamp")
		}
	}
}

func TestSaveProject_RejectsForeignOverwrite(t *testing.T) {
	store := newMemoryProjectStore()
	store.records["p-1"] = outbound.ProjectRecord{ID: "p-1", UserID: "user-2", Title: "Theirs", UpdatedAt: time.Now()}
	router := newProjectsRouter(store, &stubPublisher{}, "user-1")

	recorder := doJSON(router, http.MethodPut, "/projects", `{"id":"p-1","title":"Mine now","content":{"title":"x","scenes":[]}}`)

	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", recorder.Code)
	}
	if store.records["p-1"].Title != "Theirs" {
		t.Fatal("foreign project was overwritten")
	}
}

func TestGetProject_HidesForeignProjects(t *testing.T) {
	store := newMemoryProjectStore()
	store.records["p-1"] = outbound.ProjectRecord{ID: "p-1", UserID: "user-2", Title: "Theirs", UpdatedAt: time.Now()}
	router := newProjectsRouter(store, &stubPublisher{}, "user-1")

	recorder := doJSON(router, http.MethodGet, "/projects/p-1", "")

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign project, got %d", recorder.Code)
	}
}

func TestListProjects_OnlyOwn(t *testing.T) {
	store := newMemoryProjectStore()
	store.records["p-1"] = outbound.ProjectRecord{ID: "p-1", UserID: "user-1", Title: "Mine", UpdatedAt: time.Now()}
	store.records["p-2"] = outbound.ProjectRecord{ID: "p-2", UserID: "user-2", Title: "Theirs", UpdatedAt: time.Now()}
	router := newProjectsRouter(store, &stubPublisher{}, "user-1")

	recorder := doJSON(router, http.MethodGet, "/projects", "")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "p-1") || strings.Contains(recorder.Body.String(), "p-2") {
		t.Fatalf("listing leaked foreign projects: %s", recorder.Body.String())
	}
	if strings.Contains(recorder.Body.String(), `"content"`) {
		t.Fatal("listing should return summaries, not full content")
	}
}

func TestDeleteProject(t *testing.T) {
	store := newMemoryProjectStore()
	store.records["p-1"] = outbound.ProjectRecord{ID: "p-1", UserID: "user-1", Title: "Mine", UpdatedAt: time.Now()}
	router := newProjectsRouter(store, &stubPublisher{}, "user-1")

	recorder := doJSON(router, http.MethodDelete, "/projects/p-1", "")

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if _, ok := store.records["p-1"]; ok {
		t.Fatal("project was not deleted")
	}
}

func TestPublishProject_ReturnsShowcaseURL(t *testing.T) {
	store := newMemoryProjectStore()
	store.records["p-1"] = outbound.ProjectRecord{ID: "p-1", UserID: "user-1", Title: "Mine", UpdatedAt: time.Now()}
	publisher := &stubPublisher{}
	router := newProjectsRouter(store, publisher, "user-1")

	recorder := doJSON(router, http.MethodPost, "/projects/p-1/publish", "")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "https://showcase.example.com/p-1.json") {
		t.Fatalf("unexpected publish response: %s", recorder.Body.String())
	}
	if len(publisher.published) != 1 || publisher.published[0] != "p-1" {
		t.Fatalf("unexpected publish calls: %v", publisher.published)
	}
}
