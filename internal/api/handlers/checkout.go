package handlers

import (
	"log/slog"
	"net/http"

	"github.com/storefront-dev/storefront-platform/internal/api/middleware"
	"github.com/storefront-dev/storefront-platform/internal/errors"
	service "github.com/storefront-dev/storefront-platform/internal/services"
	"github.com/storefront-dev/storefront-platform/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	currencies      *service.CurrencyService
}

func NewCheckoutHandler(checkoutService service.CheckoutService, currencies *service.CurrencyService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		currencies:      currencies,
	}
}

// EvaluateCheckout re-verifies the cart against live stock and product
// availability. The result is advisory until capture; stock can still move
// between this call and payment.
func (h *CheckoutHandler) EvaluateCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		currency := requestCurrency(r, h.currencies)

		decision, err := h.checkoutService.Evaluate(r.Context(), claims.UserID, currency)
		if err != nil {
			logger.Error("Checkout evaluation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout evaluated",
			slog.String("status", string(decision.Status)),
			slog.Int("blocks", len(decision.Blocks)))
		response.Success(w, http.StatusOK, decision)
	}
}
