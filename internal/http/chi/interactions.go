package chi

import (
	"errors"
	"io"
	"net/http"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/signature"
	"github.com/marcelsud/approval-bridge/metrics"
)

// postInteraction handles POST /v1/slack/interactions
func postInteraction(processor approval.DecisionUseCase, recorder Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The signature covers the raw bytes, read them before any form parsing
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result, err := processor.Process(r.Context(), approval.Callback{
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
			Signature:   r.Header.Get(signature.SignatureHeader),
			Timestamp:   r.Header.Get(signature.TimestampHeader),
		})
		if err != nil {
			status, reason := callbackStatus(err)
			if reason != "" {
				recorder.RecordRejected(r.Context(), reason)
			}
			if status == http.StatusBadGateway {
				recorder.RecordDownstreamFailure(r.Context(), result.Request.Type)
			}
			http.Error(w, err.Error(), status)
			return
		}

		if result.Outcome == approval.ActionTaken {
			recorder.RecordDecision(r.Context(), result.Request.Type, result.Decision.String())
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(result.Outcome.String()))
	})
}

// callbackStatus maps a Process error to a status and, for refused calls, a reason
func callbackStatus(err error) (int, string) {
	switch {
	case errors.Is(err, approval.ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType, metrics.ReasonContentType
	case errors.Is(err, approval.ErrInvalidSignature):
		return http.StatusUnauthorized, metrics.ReasonSignature
	case errors.Is(err, approval.ErrMalformedPayload):
		return http.StatusBadRequest, metrics.ReasonMalformed
	case errors.Is(err, approval.ErrUnknownOrAlreadyConsumed):
		return http.StatusConflict, metrics.ReasonConsumed
	case errors.Is(err, approval.ErrDownstreamCallbackFailed):
		return http.StatusBadGateway, ""
	default:
		return http.StatusInternalServerError, ""
	}
}
