package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
)

// movementHandler handles punch records and attendance reports.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
	userService     portssvc.UserSvcFacade
}

// newMovementHandler creates a new movementHandler.
func newMovementHandler(ms portssvc.MovementSvcFacade, us portssvc.UserSvcFacade) *movementHandler {
	return &movementHandler{
		movementService: ms,
		userService:     us,
	}
}

// registerMovementRoutes registers all movement-related routes.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade, userService portssvc.UserSvcFacade) {
	h := newMovementHandler(movementService, userService)

	movements := rg.Group("/movements")
	{
		movements.POST("", h.recordMovement)     // Any authenticated user, own punches
		movements.GET("", h.listOwnMovements)    // Own records
		movements.PUT("/:id", h.updateMovement)  // Admin log edit
	}

	// Admin/manager views over other users' records
	rg.GET("/users/:id/movements", h.listUserMovements)
	rg.GET("/reports/attendance/:id", h.attendanceReport)
}

// recordMovement godoc
// @Summary Record a punch
// @Description Records an IN or OUT punch for the acting user at the current time.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Punch details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [post]
func (h *movementHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.movementService.RecordMovement(c.Request.Context(), actingUserID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to record movement", slog.String("error", err.Error()), slog.String("user_id", actingUserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record movement"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(record))
}

// listOwnMovements godoc
// @Summary List own movement records
// @Description Returns the acting user's punches in a time window, newest first.
// @Tags movements
// @Produce  json
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [get]
func (h *movementHandler) listOwnMovements(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	h.listMovementsFor(c, actingUserID)
}

// listUserMovements godoc
// @Summary List another user's movement records
// @Description Returns a user's punches; admins and managers only.
// @Tags movements
// @Produce  json
// @Param   id path string true "User ID"
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/movements [get]
func (h *movementHandler) listUserMovements(c *gin.Context) {
	if _, ok := requireRole(c, h.userService, domain.RoleAdmin, domain.RoleManager); !ok {
		return
	}
	h.listMovementsFor(c, c.Param("id"))
}

func (h *movementHandler) listMovementsFor(c *gin.Context, userID string) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.movementService.ListMovements(c.Request.Context(), userID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list movements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(records))
}

// updateMovement godoc
// @Summary Edit a movement record
// @Description Edits a stored punch; admin only.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   id path string true "Movement ID"
// @Param   movement body dto.UpdateMovementRequest true "Fields to change"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *movementHandler) updateMovement(c *gin.Context) {
	movementID := c.Param("id")

	actingUser, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.movementService.UpdateMovement(c.Request.Context(), movementID, req, actingUser.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movement record not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update movement"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(record))
}

// attendanceReport godoc
// @Summary Attendance summary for a user
// @Description Pairs IN/OUT punches per day in the window and totals worked hours. Admins and managers, or the user's own report.
// @Tags movements
// @Produce  json
// @Param   id path string true "User ID"
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD, exclusive)"
// @Success 200 {object} dto.AttendanceReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/attendance/{id} [get]
func (h *movementHandler) attendanceReport(c *gin.Context) {
	targetUserID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if actingUserID != targetUserID {
		if _, ok := requireRole(c, h.userService, domain.RoleAdmin, domain.RoleManager); !ok {
			return
		}
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date"})
			return
		}
		to = parsed
	}

	report, err := h.movementService.AttendanceSummary(c.Request.Context(), targetUserID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build attendance report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
