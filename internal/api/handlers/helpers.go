package handlers

import (
	"net/http"

	"github.com/storefront-dev/storefront-platform/internal/models"
	service "github.com/storefront-dev/storefront-platform/internal/services"
)

// requestCurrency resolves the caller's currency from the query string or
// the X-Currency header. There is no server-side "selected currency";
// whatever the client sends on this request wins.
func requestCurrency(r *http.Request, currencies *service.CurrencyService) models.Currency {

	code := r.URL.Query().Get("currency")
	if code == "" {
		code = r.Header.Get("X-Currency")
	}

	return currencies.Resolve(code)
}
