package controllers

import (
	"net/http"

	"github.com/xypherlux/storefront-backend/api/responses"
	"github.com/xypherlux/storefront-backend/api/validators"
	checkoutsvc "github.com/xypherlux/storefront-backend/internal/checkout"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"github.com/xypherlux/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	City            string `json:"city" validate:"required"`
	Country         string `json:"country" validate:"required"`
}

// Checkout converts the caller's active cart into an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PlaceOrder(r.Context(), userID, checkoutsvc.PlaceOrderInput{
			ShippingAddress: body.ShippingAddress,
			City:            body.City,
			Country:         body.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
