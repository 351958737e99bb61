package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/maxapp/site-backend/internal/contact"
	"github.com/maxapp/site-backend/internal/db"
	"github.com/maxapp/site-backend/internal/email"
	"github.com/maxapp/site-backend/internal/i18n"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

// testSender records outbound mail instead of delivering it.
type testSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (s *testSender) Send(ctx context.Context, msg email.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return fmt.Sprintf("test-%d", len(s.sent)), nil
}

func (s *testSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

var sender = &testSender{}

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect(databaseURL)
	dbAvailable = true

	contact.Init()

	catalog, err := i18n.LoadCatalog("../../translations")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalog:", err)
		os.Exit(1)
	}

	h := contact.NewHandler(sender, catalog, "MaxApp <no-reply@maxapp.ch>", "admin@maxapp.ch")

	// Admin endpoints are mounted without the session guard: the guard has
	// its own tests and these exercise the handlers.
	r := chi.NewRouter()
	r.Post("/api/contact", h.Submit)
	r.Get("/api/admin/submissions", h.List)
	r.Patch("/api/admin/submissions/{id}", h.UpdateStatus)
	r.Delete("/api/admin/submissions/{id}", h.Delete)
	r.Post("/api/admin/reply", h.Reply)

	testServer = httptest.NewServer(r)
	code := m.Run()
	testServer.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

func postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()
	raw, _ := json.Marshal(body)
	resp, err := http.Post(testServer.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func createSubmission(t *testing.T) contact.Submission {
	t.Helper()
	sub := contact.Submission{
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Phone:     "+41 79 000 00 00",
		Message:   "integration test message",
	}
	if err := db.DB.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}
	t.Cleanup(func() {
		db.DB.Delete(&contact.Submission{}, sub.ID)
	})
	return sub
}

// TestSubmitCreatesRecord verifies that a valid contact form submission
// stores a row with status "new" and triggers both outbound emails.
func TestSubmitCreatesRecord(t *testing.T) {
	requireDB(t)
	before := sender.count()

	resp := postJSON(t, "/api/contact", map[string]string{
		"firstName": "Max",
		"lastName":  "Muster",
		"email":     "max@example.com",
		"phone":     "+41 79 123 45 67",
		"message":   "Please call me back.",
	})

	var body struct {
		ID      uint   `json:"id"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.ID == 0 {
		t.Fatal("response did not include the new submission id")
	}
	t.Cleanup(func() {
		db.DB.Delete(&contact.Submission{}, body.ID)
	})

	var stored contact.Submission
	if err := db.DB.First(&stored, body.ID).Error; err != nil {
		t.Fatalf("stored row not found: %v", err)
	}
	if stored.Status != contact.StatusNew {
		t.Errorf("status = %q, want %q", stored.Status, contact.StatusNew)
	}

	// Confirmation + admin notification.
	if got := sender.count() - before; got != 2 {
		t.Errorf("expected 2 emails, got %d", got)
	}
}

// TestSubmitMissingFieldCreatesNothing verifies a 400 and no row when a
// required field is absent.
func TestSubmitMissingFieldCreatesNothing(t *testing.T) {
	requireDB(t)

	var before int64
	db.DB.Model(&contact.Submission{}).Count(&before)

	resp := postJSON(t, "/api/contact", map[string]string{
		"firstName": "Max",
		"email":     "max@example.com",
		"phone":     "+41 79 123 45 67",
		"message":   "no last name",
	})
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var after int64
	db.DB.Model(&contact.Submission{}).Count(&after)
	if after != before {
		t.Errorf("row count changed from %d to %d", before, after)
	}
}

// TestReplySetsBothFields verifies that replying sets status, reply_message
// and replied_at together and sends the reply email.
func TestReplySetsBothFields(t *testing.T) {
	requireDB(t)
	sub := createSubmission(t)
	before := sender.count()

	resp := postJSON(t, "/api/admin/reply", map[string]interface{}{
		"submissionId": sub.ID,
		"replyMessage": "Thanks, we will be in touch.",
	})
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stored contact.Submission
	if err := db.DB.First(&stored, sub.ID).Error; err != nil {
		t.Fatalf("fetch after reply: %v", err)
	}
	if stored.Status != contact.StatusReplied {
		t.Errorf("status = %q, want replied", stored.Status)
	}
	if stored.ReplyMessage == nil || stored.RepliedAt == nil {
		t.Errorf("reply fields not set together: message=%v at=%v", stored.ReplyMessage, stored.RepliedAt)
	}
	if got := sender.count() - before; got != 1 {
		t.Errorf("expected 1 reply email, got %d", got)
	}
}

// TestReplyUnknownSubmission verifies a 404 for a missing id.
func TestReplyUnknownSubmission(t *testing.T) {
	requireDB(t)

	resp := postJSON(t, "/api/admin/reply", map[string]interface{}{
		"submissionId": 99999999,
		"replyMessage": "hello?",
	})
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

// TestPatchCannotSetReplied verifies the status endpoint refuses "replied",
// so no code path sets the status without the reply fields.
func TestPatchCannotSetReplied(t *testing.T) {
	requireDB(t)
	sub := createSubmission(t)

	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/admin/submissions/%d", testServer.URL, sub.ID),
		bytes.NewReader([]byte(`{"status":"replied"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var stored contact.Submission
	db.DB.First(&stored, sub.ID)
	if stored.Status != contact.StatusNew {
		t.Errorf("status changed to %q", stored.Status)
	}
}

// TestArchiveAndDelete verifies archiving, deletion, and that a deleted
// submission is gone on the next fetch.
func TestArchiveAndDelete(t *testing.T) {
	requireDB(t)
	sub := createSubmission(t)

	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/admin/submissions/%d", testServer.URL, sub.ID),
		bytes.NewReader([]byte(`{"status":"archived"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("archive: expected 200, got %d", resp.StatusCode)
	}

	del, _ := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/api/admin/submissions/%d", testServer.URL, sub.ID), nil)
	resp, err = http.DefaultClient.Do(del)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(del)
	if err != nil {
		t.Fatalf("DELETE again: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", resp.StatusCode)
	}

	if err := db.DB.First(&contact.Submission{}, sub.ID).Error; err == nil {
		t.Error("submission still present after delete")
	}
}

// listResponse mirrors the JSON shape of GET /api/admin/submissions.
type listResponse struct {
	Submissions []contact.Submission `json:"submissions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
	Stats       struct {
		Total     int64 `json:"total"`
		Today     int64 `json:"today"`
		ThisWeek  int64 `json:"this_week"`
		ThisMonth int64 `json:"this_month"`
	} `json:"stats"`
}

func getList(t *testing.T, query string) (*http.Response, listResponse) {
	t.Helper()
	resp, err := http.Get(testServer.URL + "/api/admin/submissions?" + query)
	if err != nil {
		t.Fatalf("GET submissions: %v", err)
	}
	var body listResponse
	decodeBody(t, resp, &body)
	return resp, body
}

// TestListSearchSortAndStats verifies the admin listing: the search filter
// matches across name, email and message columns, total is the exact count
// of the filtered set across pages, sorting follows the requested column,
// and the dashboard counters cover the fresh rows.
func TestListSearchSortAndStats(t *testing.T) {
	requireDB(t)

	// A unique marker keeps the filtered set deterministic even when the
	// shared database already holds rows.
	marker := fmt.Sprintf("zz%d", time.Now().UnixNano())
	seed := func(first, last, addr, message string) {
		t.Helper()
		sub := contact.Submission{
			FirstName: first,
			LastName:  last,
			Email:     addr,
			Phone:     "+41 79 000 00 00",
			Message:   message,
		}
		if err := db.DB.Create(&sub).Error; err != nil {
			t.Fatalf("seed submission: %v", err)
		}
		t.Cleanup(func() {
			db.DB.Delete(&contact.Submission{}, sub.ID)
		})
	}
	seed("Alice", "Adler", "alice@example.com", "please call about "+marker)
	seed("Bob", "Berger", "bob+"+marker+"@example.com", "quote request")
	seed("Carla", "Christen"+marker, "carla@example.com", "partnership inquiry")
	seed("Dora", "Dietrich", "dora@example.com", "unrelated inquiry")

	resp, body := getList(t, "search="+marker+"&sort=first_name&dir=asc&per_page=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body.Total != 3 {
		t.Errorf("total = %d, want 3 (message, email and last_name matches)", body.Total)
	}
	if len(body.Submissions) != 2 {
		t.Fatalf("page size = %d, want 2", len(body.Submissions))
	}
	if body.Submissions[0].FirstName != "Alice" || body.Submissions[1].FirstName != "Bob" {
		t.Errorf("sort order = %q, %q, want Alice, Bob",
			body.Submissions[0].FirstName, body.Submissions[1].FirstName)
	}

	resp, rest := getList(t, "search="+marker+"&sort=first_name&dir=asc&per_page=2&page=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("page 2: expected 200, got %d", resp.StatusCode)
	}
	if rest.Total != 3 {
		t.Errorf("page 2 total = %d, want 3", rest.Total)
	}
	if len(rest.Submissions) != 1 || rest.Submissions[0].FirstName != "Carla" {
		t.Errorf("page 2 = %+v, want the single Carla row", rest.Submissions)
	}

	// All four seeded rows were created just now, so every window covers
	// them. The shared database may hold more.
	if body.Stats.Today < 4 {
		t.Errorf("stats.today = %d, want at least 4", body.Stats.Today)
	}
	if body.Stats.ThisWeek < body.Stats.Today {
		t.Errorf("stats.this_week = %d < today = %d", body.Stats.ThisWeek, body.Stats.Today)
	}
	if body.Stats.ThisMonth < 4 {
		t.Errorf("stats.this_month = %d, want at least 4", body.Stats.ThisMonth)
	}
	if body.Stats.Total < body.Stats.ThisWeek {
		t.Errorf("stats.total = %d < this_week = %d", body.Stats.Total, body.Stats.ThisWeek)
	}
}
