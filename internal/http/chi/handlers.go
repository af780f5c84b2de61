package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Recorder receives what the handlers observed, metrics.OTelExporter implements it
type Recorder interface {
	RecordIssued(ctx context.Context, approvalType string)
	RecordDecision(ctx context.Context, approvalType, decision string)
	RecordRejected(ctx context.Context, reason string)
	RecordDownstreamFailure(ctx context.Context, approvalType string)
}

// Options holds the optional parts of the router
type Options struct {
	Logger *zerolog.Logger

	// Recorder defaults to a no-op
	Recorder Recorder

	// Pending adds a pending request summary to /health when set
	Pending metrics.Collector

	// Metrics is mounted on /metrics when set
	Metrics http.Handler

	// IssueLimiter throttles the issue endpoints when set
	IssueLimiter *rate.Limiter

	// Timeout defaults to 30s
	Timeout time.Duration
}

// Handlers sets up the approval API routes
func Handlers(ctx context.Context, issuer approval.IssueUseCase, processor approval.DecisionUseCase, opts Options) *chi.Mux {
	logger := httplog.NewLogger("approval-bridge", httplog.Options{
		JSON: true,
	})
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", health(opts.Pending))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	issue := rateLimit(opts.IssueLimiter, recorder)(postApproval(issuer, recorder))
	interactions := postInteraction(processor, recorder)

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/approvals", issue)
		r.Method(http.MethodGet, "/approvals/{id}", getApproval(issuer, recorder))
		r.Method(http.MethodPost, "/slack/interactions", interactions)
	})

	// Paths used by existing workflow and Slack app configurations
	r.Method(http.MethodPost, "/approval-notify", issue)
	r.Method(http.MethodPost, "/approval-response", interactions)

	return r
}

type nopRecorder struct{}

func (nopRecorder) RecordIssued(context.Context, string) {}
func (nopRecorder) RecordDecision(context.Context, string, string) {}
func (nopRecorder) RecordRejected(context.Context, string) {}
func (nopRecorder) RecordDownstreamFailure(context.Context, string) {}
