package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/programthis/order-cart-service/internal/domains/cart/application"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
	ordersapp "github.com/programthis/order-cart-service/internal/domains/orders/application"
	apierrors "github.com/programthis/order-cart-service/internal/shared/errors"
)

// respondError maps a transport-level failure to an RFC 7807 response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	apierrors.Respond(c, problem)
}

// respondCartServiceError translates cart application errors into problems.
func respondCartServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartapp.ErrCartNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, cartapp.ErrItemNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	case errors.Is(err, cartapp.ErrProductUnavailable):
		apierrors.Respond(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
	case errors.Is(err, cartapp.ErrInvalidInput):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}

// respondOrderServiceError translates order application errors into problems.
func respondOrderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrEmptyCart):
		apierrors.Respond(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrProductNotInCatalog):
		apierrors.Respond(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidStatus):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, cartapp.ErrCartNotFound):
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}
