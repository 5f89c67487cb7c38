package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
)

// teamHandler handles HTTP requests related to teams.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
	userService portssvc.UserSvcFacade
}

// newTeamHandler creates a new teamHandler.
func newTeamHandler(ts portssvc.TeamSvcFacade, us portssvc.UserSvcFacade) *teamHandler {
	return &teamHandler{
		teamService: ts,
		userService: us,
	}
}

// RegisterTeamRoutes registers all team-related routes.
func RegisterTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade, userService portssvc.UserSvcFacade) {
	h := newTeamHandler(teamService, userService)

	teams := rg.Group("/teams")
	{
		teams.POST("", h.createTeam)                         // Admin only
		teams.GET("", h.listTeams)                           // Admin: all; others: own teams
		teams.GET("/:id", h.getTeam)                         // Admin or team member/leader
		teams.DELETE("/:id", h.deleteTeam)                   // Admin only
		teams.POST("/:id/members", h.addMember)              // Admin only
		teams.DELETE("/:id/members/:userID", h.removeMember) // Admin only
	}
}

// createTeam godoc
// @Summary Create a team
// @Description Creates a team with a leader and an initial member set; admin only.
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A listed member already belongs to a team"
// @Security BearerAuth
// @Router /teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actingUser, ok := requireRole(c, h.userService, domain.RoleAdmin)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), req, actingUser.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create team", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create team"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// listTeams godoc
// @Summary List teams
// @Description Admins see every team; other users see the teams they lead or belong to.
// @Tags teams
// @Produce  json
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [get]
func (h *teamHandler) listTeams(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	actingUser, err := h.userService.GetUserByID(c.Request.Context(), actingUserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var teams []domain.TeamWithMembers
	if actingUser.Role == domain.RoleAdmin {
		teams, err = h.teamService.ListTeams(c.Request.Context())
	} else {
		teams, err = h.teamService.ListTeamsForUser(c.Request.Context(), actingUserID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list teams"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamsResponse(teams))
}

// getTeam godoc
// @Summary Get a team
// @Description Returns the team with its leader and members; admins or people on the team.
// @Tags teams
// @Produce  json
// @Param   id path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [get]
func (h *teamHandler) getTeam(c *gin.Context) {
	teamID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve team"})
		return
	}

	if !team.Contains(actingUserID) {
		actingUser, err := h.userService.GetUserByID(c.Request.Context(), actingUserID)
		if err != nil || actingUser.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// deleteTeam godoc
// @Summary Delete a team
// @Description Deletes the team with its membership and chat history; admin only.
// @Tags teams
// @Produce  json
// @Param   id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (h *teamHandler) deleteTeam(c *gin.Context) {
	teamID := c.Param("id")

	if _, ok := requireRole(c, h.userService, domain.RoleAdmin); !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), teamID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Team not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete team"})
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a member to a team
// @Description Adds a user to the team; fails if the user already belongs to any team. Admin only.
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   id path string true "Team ID"
// @Param   member body dto.MemberRequest true "User to add"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User already belongs to a team"
// @Security BearerAuth
// @Router /teams/{id}/members [post]
func (h *teamHandler) addMember(c *gin.Context) {
	teamID := c.Param("id")

	if _, ok := requireRole(c, h.userService, domain.RoleAdmin); !ok {
		return
	}

	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.teamService.AddMember(c.Request.Context(), teamID, req.MemberID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Team or user not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add member"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a member from a team
// @Description Removes a user from the team; admin only.
// @Tags teams
// @Produce  json
// @Param   id path string true "Team ID"
// @Param   userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/members/{userID} [delete]
func (h *teamHandler) removeMember(c *gin.Context) {
	teamID := c.Param("id")
	userID := c.Param("userID")

	if _, ok := requireRole(c, h.userService, domain.RoleAdmin); !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User is not a member of this team"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove member"})
		return
	}
	c.Status(http.StatusNoContent)
}
