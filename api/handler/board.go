package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasksync/backend/api/transport"
	"github.com/tasksync/backend/pkg/httpcontext"
	"github.com/tasksync/backend/usecase/view"
)

type BoardHandler struct {
	baseHandler
	engine *view.Engine
}

func NewBoardHandler(engine *view.Engine, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
	}
}

// @Summary Composed task board for the caller
// @Tags board
// @Router /api/v1/board [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	id, ok := h.identity(ctx)
	if !ok {
		return
	}

	sortState := view.SortState{
		By:    string(ctx.QueryArgs().Peek("sort_by")),
		Order: string(ctx.QueryArgs().Peek("sort_order")),
	}
	if sortState.By == "" {
		sortState = view.DefaultSort()
	}
	sortState = sortState.Normalize()

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	board, err := h.engine.Board(stdCtx, id.UID, sortState)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewBoardResponse(board, sortState))
}
