package api

import (
	"net/http"

	reqdto "pluralink/internal/handler/dto/request"
	resdto "pluralink/internal/handler/dto/response"
	"pluralink/internal/handler/httperr"
	"pluralink/internal/handler/middleware"
	"pluralink/internal/usecase/commands"
	"pluralink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary List availability rules
// @Description List a provider's weekly availability rules
// @Tags availability
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {array} resdto.AvailabilityRuleResponse
// @Failure 400 {object} map[string]string
// @Router /providers/{id}/availability-rules [get]
func (h *AvailabilityHandler) ListRules(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid provider ID format")
		return
	}
	rules, err := h.q.ListRules(c.Request.Context(), providerID)
	if err != nil {
		abortDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": resdto.FromRuleViews(rules)})
}

// @Summary List free slots
// @Description List bookable service-duration slots for a provider-day
// @Tags availability
// @Produce json
// @Param id path string true "Provider ID"
// @Param service_id query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.FreeSlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /providers/{id}/free-slots [get]
func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid provider ID format")
		return
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service ID format")
		return
	}
	slots, err := h.q.FreeSlots(c.Request.Context(), providerID, serviceID, c.Query("date"))
	if err != nil {
		abortDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": resdto.FromFreeSlots(slots)})
}

// @Summary Create availability rule
// @Description Provider declares a weekly availability rule
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpsertAvailabilityRuleRequest true "Rule"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /availability-rules [post]
func (h *AvailabilityHandler) CreateRule(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized")
		return
	}
	var req reqdto.UpsertAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}
	result, err := h.cmds.CreateRule(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		abortDomainErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": result.RuleID})
}

// @Summary Update availability rule
// @Description Provider updates an owned weekly rule
// @Tags availability
// @Accept json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Param request body reqdto.UpsertAvailabilityRuleRequest true "Rule"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /availability-rules/{id} [put]
func (h *AvailabilityHandler) UpdateRule(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rule ID format")
		return
	}
	var req reqdto.UpsertAvailabilityRuleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format")
		return
	}
	if err := h.cmds.UpdateRule(c.Request.Context(), actor, id, req.ToCommand()); err != nil {
		abortDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete availability rule
// @Description Provider deletes an owned weekly rule
// @Tags availability
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability-rules/{id} [delete]
func (h *AvailabilityHandler) DeleteRule(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rule ID format")
		return
	}
	if err := h.cmds.DeleteRule(c.Request.Context(), actor, id); err != nil {
		abortDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
