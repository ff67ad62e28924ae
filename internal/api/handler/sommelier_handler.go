package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/core/ports"
)

type SommelierHandler struct {
	sommelier ports.SommelierService
}

func NewSommelierHandler(sommelier ports.SommelierService) *SommelierHandler {
	return &SommelierHandler{sommelier: sommelier}
}

// Pair handles POST /dashboard/sommelier.
//
// @Summary      Suggest a wine for a dish
// @Tags         sommelier
// @Accept       json
// @Produce      json
// @Param        body  body      pairingRequest  true  "Dish and preferences"
// @Success      200   {object}  ports.PairingResult
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /dashboard/sommelier [post]
func (h *SommelierHandler) Pair(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req pairingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.sommelier.Pair(c.Request().Context(), p, ports.PairingInput{
		Dish:        strings.TrimSpace(req.Dish),
		Preferences: strings.TrimSpace(req.Preferences),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
