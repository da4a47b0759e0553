package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasksync/backend/api/transport"
	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

// identity rebuilds the caller's identity from the headers populated by
// the auth middleware; responds 401 and returns false when absent.
func (h baseHandler) identity(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	id := domain.Identity{
		UID:         string(ctx.Request.Header.Peek("X-User-ID")),
		DisplayName: string(ctx.Request.Header.Peek("X-User-Name")),
		Email:       string(ctx.Request.Header.Peek("X-User-Email")),
	}
	if id.UID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user id", nil))
		return domain.Identity{}, false
	}
	return id, true
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalidCredential):
		return http.StatusUnauthorized, string(domain.ErrCodeInvalidCredential)
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeAuth):
		return http.StatusUnauthorized, string(domain.ErrCodeAuth)
	case domain.IsDomainError(err, domain.ErrCodePartial):
		return http.StatusConflict, string(domain.ErrCodePartial)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeStore):
		return http.StatusBadGateway, string(domain.ErrCodeStore)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
