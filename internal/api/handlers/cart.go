package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/storefront-dev/storefront-platform/internal/api/middleware"
	"github.com/storefront-dev/storefront-platform/internal/errors"
	"github.com/storefront-dev/storefront-platform/internal/models"
	service "github.com/storefront-dev/storefront-platform/internal/services"
	"github.com/storefront-dev/storefront-platform/internal/utils"
	"github.com/storefront-dev/storefront-platform/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	currencies  *service.CurrencyService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService, currencies *service.CurrencyService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		currencies:  currencies,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		currency := requestCurrency(r, h.currencies)

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID, currency)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		currency := requestCurrency(r, h.currencies)

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, currency, &req)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		currency := requestCurrency(r, h.currencies)

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, currency, &req)
		if err != nil {
			logger.Error("Failed to update item quantity",
				slog.String("itemId", req.ItemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		itemID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid item id"))
			return
		}

		currency := requestCurrency(r, h.currencies)

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, currency, itemID)
		if err != nil {
			logger.Error("Failed to remove item from cart",
				slog.String("itemId", itemID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		currency := requestCurrency(r, h.currencies)

		if err := h.cartService.ClearCart(r.Context(), claims.UserID, currency); err != nil {
			logger.Error("Failed to clear cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
