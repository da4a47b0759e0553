package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasksync/backend/pkg/httpcontext"
	"github.com/tasksync/backend/usecase/resolver"
)

type UsersHandler struct {
	baseHandler
	resolver *resolver.Resolver
}

func NewUsersHandler(res *resolver.Resolver, adapter *httpcontext.Adapter, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		baseHandler: newBaseHandler(adapter, logger),
		resolver:    res,
	}
}

// @Summary Assignment candidates (everyone but the caller)
// @Tags users
// @Router /api/v1/users [get]
func (h *UsersHandler) ListCandidates(ctx *fasthttp.RequestCtx) {
	id, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.resolver.ListCandidates(stdCtx, id.UID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}
