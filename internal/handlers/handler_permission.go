package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	"github.com/movetrack/movement_tracking_app/internal/dto"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
)

// Permission and menu endpoints live on the user handler: they are keyed by
// user id and share its authorization helpers.

// getPermissions godoc
// @Summary Get a user's permission map
// @Description Returns every recognized navigation path with its flag; admin only.
// @Tags permissions
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [get]
func (h *userHandler) getPermissions(c *gin.Context) {
	targetUserID := c.Param("id")

	if _, ok := requireRole(c, h.userService, domain.RoleAdmin); !ok {
		return
	}

	perms, err := h.permissionService.GetPermissions(c.Request.Context(), targetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load permissions"})
		return
	}
	c.JSON(http.StatusOK, dto.PermissionsResponse{Data: perms})
}

// setPermissions godoc
// @Summary Replace a user's permission map
// @Description Atomically replaces the stored map; admin only. Unknown path keys are stored but never rendered.
// @Tags permissions
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   body body dto.SetPermissionsRequest true "Full permission map"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permissions [put]
func (h *userHandler) setPermissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	targetUserID := c.Param("id")

	actingUser, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.permissionService.SetPermissions(c.Request.Context(), targetUserID, req.Permissions); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to replace permissions", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save permissions"})
		}
		return
	}

	logger.Info("Permissions replaced",
		slog.String("target_user_id", targetUserID),
		slog.String("updated_by", actingUser.UserID))

	perms, err := h.permissionService.GetPermissions(c.Request.Context(), targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Saved but failed to reload permissions"})
		return
	}
	c.JSON(http.StatusOK, dto.PermissionsResponse{Data: perms})
}

// getMenu godoc
// @Summary Resolve a user's navigation menu
// @Description Returns the ordered menu entries the user's permission map allows.
// @Tags permissions
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.MenuResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/menu [get]
func (h *userHandler) getMenu(c *gin.Context) {
	targetUserID := c.Param("id")
	if !h.authorizeSelfOrAdmin(c, targetUserID) {
		return
	}

	menu, err := h.permissionService.ResolveMenuForUser(c.Request.Context(), targetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve menu"})
		return
	}
	c.JSON(http.StatusOK, dto.MenuResponse{Menu: menu})
}
