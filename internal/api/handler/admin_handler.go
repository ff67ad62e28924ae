package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/core/domain"
	"github.com/weinhaus/storefront/internal/core/ports"
)

// AdminHandler handles administrative changes to user records.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ChangeRole handles PATCH /admin/users/:id/role. The new role applies to the
// user's next request; existing sessions are not reissued.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id}/role [patch]
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.ChangeRole(c.Request().Context(), p, c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}
