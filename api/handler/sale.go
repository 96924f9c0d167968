package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/salesgo/backend/api/transport"
	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/pkg/httpcontext"
	saleUC "github.com/salesgo/backend/usecase/sale"
)

type SaleHandler struct {
	baseHandler
	uc *saleUC.UseCase
}

func NewSaleHandler(uc *saleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create sale
// @Tags sales
// @Router /api/v1/sales [post]
func (h *SaleHandler) CreateSale(ctx *fasthttp.RequestCtx) {
	var req transport.CreateSaleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	cmd := &saleUC.CreateSaleCommand{
		SaleNumber:  req.SaleNumber,
		TotalAmount: req.TotalAmount,
		BranchID:    req.BranchID,
		CustomerID:  req.CustomerID,
		IsCancelled: req.IsCancelled,
		Items:       make([]saleUC.CreateSaleItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, saleUC.CreateSaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.CreateSale(stdCtx, cmd)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !result.Success {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), result.Errors, nil))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary List sales
// @Tags sales
// @Router /api/v1/sales [get]
func (h *SaleHandler) GetSales(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sales, err := h.uc.ListSales(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sales)
}

// @Summary Get sale
// @Tags sales
// @Router /api/v1/sales/{id} [get]
func (h *SaleHandler) GetSale(ctx *fasthttp.RequestCtx) {
	id, ok := h.saleID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sale, err := h.uc.GetSale(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sale)
}

// @Summary Cancel sale
// @Tags sales
// @Router /api/v1/sales/{id}/cancel [post]
func (h *SaleHandler) CancelSale(ctx *fasthttp.RequestCtx) {
	h.toggleCancelled(ctx, true)
}

// @Summary Activate sale
// @Tags sales
// @Router /api/v1/sales/{id}/activate [post]
func (h *SaleHandler) ActivateSale(ctx *fasthttp.RequestCtx) {
	h.toggleCancelled(ctx, false)
}

// @Summary Delete sale
// @Tags sales
// @Router /api/v1/sales/{id} [delete]
func (h *SaleHandler) DeleteSale(ctx *fasthttp.RequestCtx) {
	id, ok := h.saleID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteSale(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *SaleHandler) toggleCancelled(ctx *fasthttp.RequestCtx, cancelled bool) {
	id, ok := h.saleID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		sale *domain.Sale
		err  error
	)
	if cancelled {
		sale, err = h.uc.CancelSale(stdCtx, id)
	} else {
		sale, err = h.uc.ActivateSale(stdCtx, id)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sale)
}

func (h *SaleHandler) saleID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing sale id", nil))
		return "", false
	}
	return id, true
}
