package api

import (
	"net/http"

	reqdto "staybook/internal/handler/dto/request"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/httperr"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PriceRuleHandler struct {
	cmds commands.PriceRuleCommands
	q    queries.PriceRuleQueries
}

func NewPriceRuleHandler(cmds commands.PriceRuleCommands, q queries.PriceRuleQueries) *PriceRuleHandler {
	return &PriceRuleHandler{cmds: cmds, q: q}
}

// @Summary List price rules
// @Tags price-rules
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "Property ID"
// @Param includeInactive query bool false "Include deactivated rules"
// @Success 200 {array} resdto.PriceRuleResponse
// @Failure 400 {object} httperr.Response
// @Router /api/properties/{propertyId}/price-rules [get]
func (h *PriceRuleHandler) List(c *gin.Context) {
	propertyID, ok := parseID(c, "propertyId")
	if !ok {
		return
	}
	var query reqdto.ListPriceRulesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.q.ListByProperty(c.Request.Context(), propertyID, query.IncludeInactive)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPriceRuleList(views))
}

// @Summary Create price rule
// @Description Rules of one property may not overlap while active; endDate is inclusive
// @Tags price-rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param propertyId path string true "Property ID"
// @Param request body reqdto.CreatePriceRuleRequest true "Create price rule request"
// @Success 201 {object} resdto.PriceRuleResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/properties/{propertyId}/price-rules [post]
func (h *PriceRuleHandler) Create(c *gin.Context) {
	propertyID, ok := parseID(c, "propertyId")
	if !ok {
		return
	}
	var req reqdto.CreatePriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreatePriceRule(c.Request.Context(), propertyID, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPriceRuleView(view))
}

// @Summary Deactivate price rule
// @Tags price-rules
// @Security BearerAuth
// @Param propertyId path string true "Property ID"
// @Param ruleId path string true "Price rule ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{propertyId}/price-rules/{ruleId} [delete]
func (h *PriceRuleHandler) Deactivate(c *gin.Context) {
	propertyID, ok := parseID(c, "propertyId")
	if !ok {
		return
	}
	ruleID, ok := parseID(c, "ruleId")
	if !ok {
		return
	}

	if err := h.cmds.DeactivatePriceRule(c.Request.Context(), propertyID, ruleID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
