package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/community-forum-api/internal/api"
	"github.com/community-forum-api/internal/config"
	"github.com/community-forum-api/internal/mocks"
	"github.com/community-forum-api/internal/repository"
	"github.com/community-forum-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	repos := &repository.Repositories{
		Topic:  mocks.NewMockTopicRepository(),
		Event:  mocks.NewMockEventRepository(),
		Ticket: mocks.NewMockTicketRepository(),
	}
	services := service.NewServices(repos, zerolog.Nop())
	cfg := &config.Config{
		Server: config.ServerConfig{StaticDir: t.TempDir()},
	}
	return api.NewRouter(services, cfg, zerolog.Nop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", body["status"])
	}
}

func TestTopicLifecycle(t *testing.T) {
	router := setupRouter(t)

	// Create
	w := doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "Sous Vide Basics",
		"description": "Getting started with sous vide cooking",
		"category":    "Cooking Tips",
		"type":        "Tip",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	if data["likes"].(float64) != 0 || data["views"].(float64) != 0 {
		t.Errorf("expected zero counters on a new topic, got %v", data)
	}
	if comments, ok := data["comments"].([]interface{}); !ok || len(comments) != 0 {
		t.Errorf("expected empty comments array, got %v", data["comments"])
	}
	id := data["id"].(string)

	// Comment
	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/comments", gin.H{
		"user":    "alice",
		"content": "Great tip!",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for comment, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["message"] != "Comment added successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
	comment := body["data"].(map[string]interface{})
	if comment["id"] == "" || comment["id"] == nil {
		t.Error("expected a fresh comment id")
	}

	// Fetch reflects the comment and a bumped view counter
	w = doJSON(t, router, http.MethodGet, "/api/topics/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body = decodeBody(t, w)
	data = body["data"].(map[string]interface{})
	if comments := data["comments"].([]interface{}); len(comments) != 1 {
		t.Errorf("expected 1 comment, got %d", len(comments))
	}
	if data["views"].(float64) != 1 {
		t.Errorf("expected views incremented to 1, got %v", data["views"])
	}

	// Update
	w = doJSON(t, router, http.MethodPut, "/api/topics/"+id, gin.H{
		"title":       "Sous Vide Fundamentals",
		"description": "Getting started with sous vide cooking",
		"category":    "Cooking Tips",
		"type":        "Tip",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["data"].(map[string]interface{})["title"] != "Sous Vide Fundamentals" {
		t.Errorf("update not reflected: %v", body["data"])
	}

	// Delete
	w = doJSON(t, router, http.MethodDelete, "/api/topics/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/topics/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestTopicCreateMissingFields(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title": "No description",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "All fields (title, description, category, type) are required." {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestTopicCreateTooManyTags(t *testing.T) {
	router := setupRouter(t)

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = "tag"
	}
	w := doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "Over-tagged",
		"description": "d",
		"category":    "Cooking Tips",
		"type":        "Tip",
		"tags":        tags,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Validation error" {
		t.Errorf("unexpected message %v", body["message"])
	}
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) != 1 || errs[0] != "Cannot have more than 10 tags" {
		t.Errorf("unexpected errors list %v", body["errors"])
	}
}

func TestTopicInvalidIDVersusUnknownID(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/topics/not-a-valid-id", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Invalid topic ID format." {
		t.Errorf("unexpected message %v", body["message"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/topics/64a000000000000000000000", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
	body = decodeBody(t, w)
	if body["message"] != "Topic not found." {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestTopicLikeToggle(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "Likeable",
		"description": "d",
		"category":    "Reviews",
		"type":        "Review",
	})
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/like", gin.H{"userId": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Topic liked successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
	data := body["data"].(map[string]interface{})
	if data["likes"].(float64) != 1 || data["hasLiked"] != true {
		t.Errorf("unexpected like result %v", data)
	}

	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/like", gin.H{"userId": "alice"})
	body = decodeBody(t, w)
	if body["message"] != "Topic unliked successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
	data = body["data"].(map[string]interface{})
	if data["likes"].(float64) != 0 || data["hasLiked"] != false {
		t.Errorf("unexpected unlike result %v", data)
	}

	// Missing user id
	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/like", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without userId, got %d", w.Code)
	}
}

func TestTopicListPaginationEnvelope(t *testing.T) {
	router := setupRouter(t)

	for i := 0; i < 3; i++ {
		doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
			"title":       "t",
			"description": "d",
			"category":    "Reviews",
			"type":        "Review",
		})
	}

	w := doJSON(t, router, http.MethodGet, "/api/topics?page=1&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success envelope, got %v", body)
	}
	pagination := body["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 3 || pagination["pages"].(float64) != 2 {
		t.Errorf("unexpected pagination %v", pagination)
	}
	if data := body["data"].([]interface{}); len(data) != 2 {
		t.Errorf("expected 2 topics on the page, got %d", len(data))
	}
}

func TestCommentLike(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "t",
		"description": "d",
		"category":    "Reviews",
		"type":        "Review",
	})
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/comments", gin.H{
		"user":    "bob",
		"content": "nice",
	})
	commentID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/comments/"+commentID+"/like", gin.H{"userId": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["data"].(map[string]interface{})["likes"].(float64) != 1 {
		t.Errorf("expected 1 like, got %v", body["data"])
	}

	w = doJSON(t, router, http.MethodPost, "/api/topics/"+id+"/comments/64a000000000000000000000/like", gin.H{"userId": "alice"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown comment, got %d", w.Code)
	}
	body = decodeBody(t, w)
	if body["message"] != "Comment not found." {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestTopicSearchEndpoint(t *testing.T) {
	router := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "Weeknight pasta",
		"description": "quick dinners",
		"category":    "Meal Planning",
		"type":        "Recipe",
	})
	doJSON(t, router, http.MethodPost, "/api/topics", gin.H{
		"title":       "Grill maintenance",
		"description": "scrub it",
		"category":    "Kitchen Equipment",
		"type":        "Tip",
	})

	w := doJSON(t, router, http.MethodGet, "/api/topics/search/PASTA", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if data := body["data"].([]interface{}); len(data) != 1 {
		t.Errorf("expected 1 search hit, got %d", len(data))
	}
}

func TestEventEndpoints(t *testing.T) {
	router := setupRouter(t)

	// Missing required fields
	w := doJSON(t, router, http.MethodPost, "/api/events", gin.H{"title": "Potluck"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Please provide all required fields." {
		t.Errorf("unexpected message %v", body["message"])
	}

	w = doJSON(t, router, http.MethodPost, "/api/events", gin.H{
		"title":       "Potluck",
		"description": "Bring a dish",
		"eventDate":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"location":    "Community hall",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["message"] != "Event created successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
	event := body["event"].(map[string]interface{})
	id := event["id"].(string)

	// The listing is a bare array, no envelope
	w = doJSON(t, router, http.MethodGet, "/api/events", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var events []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("event listing should be a bare array, got %q", w.Body.String())
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}

	// Partial update
	w = doJSON(t, router, http.MethodPut, "/api/events/"+id, gin.H{"location": "Park pavilion"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	event = body["event"].(map[string]interface{})
	if event["location"] != "Park pavilion" {
		t.Errorf("update not applied: %v", event)
	}
	if event["title"] != "Potluck" {
		t.Errorf("untouched field changed: %v", event)
	}

	// Not found uses the bare body shape
	w = doJSON(t, router, http.MethodGet, "/api/events/64a000000000000000000000", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body = decodeBody(t, w)
	if body["message"] != "Event not found" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if _, present := body["success"]; present {
		t.Error("event errors must not carry the success envelope")
	}

	w = doJSON(t, router, http.MethodDelete, "/api/events/"+id, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for delete, got %d", w.Code)
	}
}

func TestTicketEndpoints(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/tickets", gin.H{"subject": "Broken checkout"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Subject and description are required" {
		t.Errorf("unexpected message %v", body["message"])
	}

	w = doJSON(t, router, http.MethodPost, "/api/tickets", gin.H{
		"subject":     "Broken checkout",
		"description": "Payment page hangs",
		"priority":    "High",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	ticket := body["data"].(map[string]interface{})
	if ticket["status"] != "Open" || ticket["category"] != "General" {
		t.Errorf("unexpected defaults %v", ticket)
	}
	id := ticket["id"].(string)

	doJSON(t, router, http.MethodPost, "/api/tickets", gin.H{
		"subject":     "Question",
		"description": "d",
	})

	// Filtered listing with count
	w = doJSON(t, router, http.MethodGet, "/api/tickets?priority=High", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body = decodeBody(t, w)
	if body["count"].(float64) != 1 {
		t.Errorf("expected count 1, got %v", body["count"])
	}

	// Resolve and check stats
	w = doJSON(t, router, http.MethodPut, "/api/tickets/"+id, gin.H{"status": "Resolved"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["data"].(map[string]interface{})["resolvedAt"] == nil {
		t.Error("resolving must stamp resolvedAt")
	}

	w = doJSON(t, router, http.MethodGet, "/api/tickets/stats/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body = decodeBody(t, w)
	stats := body["data"].(map[string]interface{})
	if stats["total"].(float64) != 2 || stats["highPriority"].(float64) != 1 {
		t.Errorf("unexpected stats %v", stats)
	}
	byStatus := stats["byStatus"].(map[string]interface{})
	if byStatus["resolved"].(float64) != 1 || byStatus["open"].(float64) != 1 {
		t.Errorf("unexpected status breakdown %v", byStatus)
	}
}

func TestUnmatchedAPIPathReturnsJSON404(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false || body["message"] != "Not found" {
		t.Errorf("unexpected body %v", body)
	}
}
