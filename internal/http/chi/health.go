package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/approval-bridge/metrics"
)

type healthResponse struct {
	Status        string           `json:"status"`
	PendingTotal  *int64           `json:"pending_total,omitempty"`
	PendingByType map[string]int64 `json:"pending_by_type,omitempty"`
}

// health reports liveness, plus the pending request counts when a collector is set
// A collector error means the store is unreachable and answers 503
func health(pending metrics.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if pending == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
			return
		}

		snapshot, err := metrics.Collect(r.Context(), pending)
		if err != nil {
			oplog := httplog.LogEntry(r.Context())
			oplog.Error().Err(err).Msg("collecting pending requests")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(healthResponse{Status: "unhealthy"})
			return
		}

		total := snapshot.Total()
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(healthResponse{
			Status:        "healthy",
			PendingTotal:  &total,
			PendingByType: snapshot.PendingByType,
		})
	}
}
