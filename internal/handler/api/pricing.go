package api

import (
	"net/http"

	reqdto "staybook/internal/handler/dto/request"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/httperr"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	q queries.PricingQueries
}

func NewPricingHandler(q queries.PricingQueries) *PricingHandler {
	return &PricingHandler{q: q}
}

// @Summary Quote a stay
// @Description Total price of the nights in [checkIn, checkOut)
// @Tags pricing
// @Produce json
// @Param roomId path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.PriceQuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{roomId}/price [get]
func (h *PricingHandler) Quote(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "checkIn and checkOut are required", nil)
		return
	}

	quote, err := h.q.QuotePrice(c.Request.Context(), roomID, query.CheckIn, query.CheckOut)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPriceQuote(quote))
}

// @Summary Check availability
// @Tags pricing
// @Produce json
// @Param roomId path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{roomId}/availability [get]
func (h *PricingHandler) Availability(c *gin.Context) {
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "checkIn and checkOut are required", nil)
		return
	}

	view, err := h.q.CheckAvailability(c.Request.Context(), roomID, query.CheckIn, query.CheckOut)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(view))
}

// @Summary Month calendar
// @Description Price and availability of every day of the month
// @Tags pricing
// @Produce json
// @Param propertyId path string true "Property ID"
// @Param roomId path string true "Room ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {array} resdto.CalendarDayResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{propertyId}/rooms/{roomId}/calendar [get]
func (h *PricingHandler) Calendar(c *gin.Context) {
	propertyID, ok := parseID(c, "propertyId")
	if !ok {
		return
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var query reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "month is required", nil)
		return
	}

	days, err := h.q.MonthCalendar(c.Request.Context(), propertyID, roomID, query.Month)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendar(days))
}
