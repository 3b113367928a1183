package handlers

import (
	"net/http"

	service "github.com/storefront-dev/storefront-platform/internal/services"
	"github.com/storefront-dev/storefront-platform/internal/utils/response"
)

type CurrencyHandler struct {
	currencies *service.CurrencyService
}

func NewCurrencyHandler(currencies *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

func (h *CurrencyHandler) ListCurrencies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.currencies.Supported())
	}
}
