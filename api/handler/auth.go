package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasksync/backend/api/transport"
	"github.com/tasksync/backend/domain"
	"github.com/tasksync/backend/identity"
	"github.com/tasksync/backend/pkg/httpcontext"
	"github.com/tasksync/backend/usecase/session"
)

type AuthHandler struct {
	baseHandler
	state  *session.State
	signer *identity.TokenSigner
}

func NewAuthHandler(state *session.State, signer *identity.TokenSigner, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		state:       state,
		signer:      signer,
	}
}

// @Summary Sign in with email and password
// @Tags auth
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(ctx *fasthttp.RequestCtx) {
	var req transport.SignInRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.state.SignIn(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondToken(ctx, http.StatusOK, id)
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(ctx *fasthttp.RequestCtx) {
	var req transport.SignUpRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.state.SignUp(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondToken(ctx, http.StatusCreated, id)
}

// @Summary Sign out
// @Tags auth
// @Router /api/v1/auth/signout [post]
func (h *AuthHandler) SignOut(ctx *fasthttp.RequestCtx) {
	h.state.SignOut()
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *AuthHandler) respondToken(ctx *fasthttp.RequestCtx, status int, id domain.Identity) {
	token, err := h.signer.Sign(id)
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "token issue failed", err))
		return
	}
	h.respondSuccess(ctx, status, map[string]interface{}{
		"identity": id,
		"token":    token,
	})
}
