package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/maxapp/site-backend/internal/db"
	"github.com/maxapp/site-backend/internal/email"
	"github.com/maxapp/site-backend/internal/i18n"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// storeTimeout bounds database calls issued by the handlers.
const storeTimeout = 5 * time.Second

// Handler serves the public contact endpoint and the admin submission APIs.
type Handler struct {
	Sender  email.Sender
	Catalog *i18n.Catalog

	// From is the outbound From address; AdminTo receives new-submission
	// notifications (empty disables them).
	From    string
	AdminTo string

	limiter *ipLimiter
}

func NewHandler(sender email.Sender, catalog *i18n.Catalog, from, adminTo string) *Handler {
	return &Handler{
		Sender:  sender,
		Catalog: catalog,
		From:    from,
		AdminTo: adminTo,
		limiter: newIPLimiter(rate.Every(10*time.Second), 3),
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[contact] failed to encode response: %v", err)
	}
}

// Submit handles POST /api/contact: validate, store, then best-effort
// confirmation and admin notification emails.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	locale, ok := i18n.Parse(req.Locale)
	if !ok {
		locale = i18n.Default
	}

	submission := Submission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := db.DB.WithContext(ctx).Create(&submission).Error; err != nil {
		log.Printf("[contact] failed to store submission: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error processing form submission"})
		return
	}

	// Emails are best-effort: a failed send never fails the submission.
	h.sendBestEffort(r.Context(), email.Message{
		From:    h.From,
		To:      submission.Email,
		Subject: h.Catalog.Lookup(locale, "email.confirmation.subject"),
		HTML:    email.ConfirmationBody(submission.FirstName, submission.Message),
	}, "confirmation")

	if h.AdminTo != "" {
		h.sendBestEffort(r.Context(), email.Message{
			From:    h.From,
			To:      h.AdminTo,
			Subject: h.Catalog.Lookup(i18n.Default, "email.notification.subject"),
			HTML: email.NotificationBody(submission.FirstName, submission.LastName,
				submission.Email, submission.Phone, submission.Message),
		}, "admin notification")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": h.Catalog.Lookup(locale, "contact.success"),
		"id":      submission.ID,
	})
}

func (h *Handler) sendBestEffort(ctx context.Context, msg email.Message, kind string) {
	if id, err := h.Sender.Send(ctx, msg); err != nil {
		log.Printf("[contact] %s email to %s failed: %v", kind, msg.To, err)
	} else {
		log.Printf("[contact] %s email sent id=%s", kind, id)
	}
}

// listStats are the dashboard counters shown above the submissions table.
type listStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"this_week"`
	ThisMonth int64 `json:"this_month"`
}

// List handles GET /api/admin/submissions: free-text search across
// name/email/message, whitelisted column sort (created_at desc by default),
// range pagination, exact count of the filtered set.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := parseListParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	filtered := func() *gorm.DB {
		q := db.DB.WithContext(ctx).Model(&Submission{})
		if p.Search != "" {
			like := "%" + p.Search + "%"
			q = q.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR message ILIKE ?",
				like, like, like, like)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		log.Printf("[contact] count failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch submissions"})
		return
	}

	var submissions []Submission
	err := filtered().
		Order(p.OrderClause()).
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&submissions).Error
	if err != nil {
		log.Printf("[contact] list failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch submissions"})
		return
	}

	stats := submissionStats(ctx, db.DB)

	if submissions == nil {
		submissions = []Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": submissions,
		"total":       total,
		"page":        p.Page,
		"per_page":    p.PerPage,
		"stats":       stats,
	})
}

// submissionStats computes the dashboard counters. Stats never fail the
// list response: a failed count is logged and left at zero.
func submissionStats(ctx context.Context, g *gorm.DB) listStats {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var s listStats
	base := func() *gorm.DB { return g.WithContext(ctx).Model(&Submission{}) }
	count := func(dst *int64, q *gorm.DB) {
		if err := q.Count(dst).Error; err != nil {
			log.Printf("[contact] stats query failed: %v", err)
		}
	}

	count(&s.Total, base())
	count(&s.Today, base().Where("created_at >= ?", midnight))
	count(&s.ThisWeek, base().Where("created_at >= ?", now.AddDate(0, 0, -7)))
	count(&s.ThisMonth, base().Where("created_at >= ?", monthStart))
	return s
}

// UpdateStatus handles PATCH /api/admin/submissions/{id}. Setting "replied"
// goes through Reply, which owns the reply fields; this endpoint covers
// archive and un-archive.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid submission id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		return
	}
	if !ValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		return
	}
	if req.Status == StatusReplied {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Use the reply endpoint to mark as replied"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var submission Submission
	if err := db.DB.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Submission not found"})
			return
		}
		log.Printf("[contact] lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update submission"})
		return
	}

	if err := db.DB.WithContext(ctx).Model(&submission).Update("status", req.Status).Error; err != nil {
		log.Printf("[contact] status update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update submission"})
		return
	}

	submission.Status = req.Status
	writeJSON(w, http.StatusOK, map[string]interface{}{"submission": submission})
}

// Delete handles DELETE /api/admin/submissions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid submission id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	result := db.DB.WithContext(ctx).Delete(&Submission{}, id)
	if result.Error != nil {
		log.Printf("[contact] delete failed: %v", result.Error)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete submission"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Submission not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Submission deleted"})
}

// Reply handles POST /api/admin/reply: mark the submission replied (status,
// reply_message and replied_at written in one UPDATE) and send the reply
// email best-effort.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubmissionID uint   `json:"submissionId"`
		ReplyMessage string `json:"replyMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		return
	}
	if req.SubmissionID == 0 || req.ReplyMessage == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Submission ID and reply message are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var submission Submission
	if err := db.DB.WithContext(ctx).First(&submission, req.SubmissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Submission not found"})
			return
		}
		log.Printf("[contact] lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to check submission"})
		return
	}

	repliedAt := time.Now()
	err := db.DB.WithContext(ctx).Model(&submission).Updates(map[string]interface{}{
		"status":        StatusReplied,
		"reply_message": req.ReplyMessage,
		"replied_at":    repliedAt,
	}).Error
	if err != nil {
		log.Printf("[contact] reply update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update submission status"})
		return
	}

	submission.Status = StatusReplied
	submission.ReplyMessage = &req.ReplyMessage
	submission.RepliedAt = &repliedAt

	h.sendBestEffort(r.Context(), email.Message{
		From:    h.From,
		To:      submission.Email,
		Subject: h.Catalog.Lookup(i18n.Default, "email.reply.subject"),
		HTML:    email.ReplyBody(submission.FirstName, req.ReplyMessage),
	}, "reply")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"submission": submission,
	})
}
