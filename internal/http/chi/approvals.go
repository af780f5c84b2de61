package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/metrics"
)

/* HTTP layer DTOs for the approval API
 * Separate from domain entities to avoid leaking internal structure
 */

// APIKeyHeader carries the notification api key
const APIKeyHeader = "X-Api-Key"

// Bodies above this size are cut off and fail to parse
const maxBodyBytes = 1 << 20

// approvalResponse represents a pending request in the API
type approvalResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Channel   string         `json:"slack_channel"`
	Fields    []string       `json:"msg_fields"`
	Data      map[string]any `json:"data"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// postApproval handles POST /v1/approvals
func postApproval(issuer approval.IssueUseCase, recorder Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		request, err := issuer.Issue(r.Context(), r.Header.Get(APIKeyHeader), body)
		switch {
		case err == nil:
		case errors.Is(err, approval.ErrUnauthorized):
			recorder.RecordRejected(r.Context(), metrics.ReasonUnauthorized)
			http.Error(w, "unauthorized", http.StatusForbidden)
			return
		case errors.Is(err, approval.ErrMalformedPayload):
			recorder.RecordRejected(r.Context(), metrics.ReasonMalformed)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		recorder.RecordIssued(r.Context(), request.Type)
		w.Header().Set("Location", "/v1/approvals/"+request.ID)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}

// getApproval handles GET /v1/approvals/{id}
func getApproval(issuer approval.IssueUseCase, recorder Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		request, err := issuer.Lookup(r.Context(), r.Header.Get(APIKeyHeader), id)
		switch {
		case err == nil:
		case errors.Is(err, approval.ErrUnauthorized):
			recorder.RecordRejected(r.Context(), metrics.ReasonUnauthorized)
			http.Error(w, "unauthorized", http.StatusForbidden)
			return
		case errors.Is(err, approval.ErrNotFound):
			http.Error(w, "approval request not found", http.StatusNotFound)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := approvalResponse{
			ID:        request.ID,
			Type:      request.Type,
			Title:     request.Title,
			Channel:   request.Channel,
			Fields:    request.Fields,
			Data:      request.Payload,
			Status:    request.Status.String(),
			CreatedAt: request.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
