package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medassist/medassist/internal/platform/auth"
)

// AuditEntry represents an audit log entry produced by the middleware.
// It captures who asked what, when, from where, and the action type.
type AuditEntry struct {
	UserID         string
	UserRoles      []string
	Endpoint       string
	ConversationID string
	Action         string // query, lookup, read
	IPAddress      string
	UserAgent      string
	Path           string
	Method         string
	Timestamp      time.Time
	RequestID      string
	StatusCode     int
}

// AuditRecorder is the interface that the audit middleware uses to persist
// audit entries. This decouples the middleware from any concrete store so
// that tests can provide a mock implementation.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns Echo middleware that intercepts requests to /api/v1/*,
// extracts the authenticated user from JWT claims, determines the endpoint
// being exercised, and logs the access. Clinical question answering and drug
// interaction checks are patient-affecting operations, so every call gets a
// structured audit trail regardless of outcome.
//
// If no AuditRecorder is provided, it falls back to structured zerolog logging.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isAuditablePath(path) {
				return next(c)
			}

			// Execute the handler first so we capture the response status
			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
			}

			// Extract authenticated user from JWT claims via context
			ctx := req.Context()
			entry.UserID = auth.UserIDFromContext(ctx)
			entry.UserRoles = auth.RolesFromContext(ctx)

			// Request ID from middleware chain
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			entry.Endpoint = extractEndpoint(path)
			entry.Action = endpointAction(entry.Endpoint, req.Method)
			entry.ConversationID = extractConversationID(c)

			// Record the audit entry
			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			// Always emit a structured log for audit trail
			logger.Info().
				Str("type", "clinical_audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("endpoint", entry.Endpoint).
				Str("conversation_id", entry.ConversationID).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("clinical_access")

			return err
		}
	}
}

// isAuditablePath returns true if the path is under /api/v1/.
func isAuditablePath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/")
}

// extractEndpoint parses the top-level endpoint name from an API path,
// e.g. /api/v1/drugs/check -> drugs.
func extractEndpoint(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}

// endpointAction maps the endpoint and HTTP method to an audit action code.
// A POST to /chat is a clinical query, a POST to /drugs/check is an
// interaction lookup, and everything else reduces to the HTTP verb.
func endpointAction(endpoint, method string) string {
	switch {
	case endpoint == "chat" && method == http.MethodPost:
		return "query"
	case endpoint == "drugs" && method == http.MethodPost:
		return "lookup"
	case method == http.MethodGet, method == http.MethodHead:
		return "read"
	case method == http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// extractConversationID attempts to find a conversation identifier in the
// request, either as the /api/v1/history/:id path parameter or as a query
// parameter.
func extractConversationID(c echo.Context) string {
	path := c.Request().URL.Path

	if strings.HasPrefix(path, "/api/v1/history/") {
		segments := strings.Split(strings.TrimPrefix(path, "/api/v1/history/"), "/")
		if len(segments) > 0 && segments[0] != "" {
			return segments[0]
		}
	}

	return c.QueryParam("conversation_id")
}
