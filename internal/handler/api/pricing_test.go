//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"staybook/internal/handler/api"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"
	"staybook/tests/common/httptest"
	queriesmock "staybook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PricingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockPricingQueries
	roomID      uuid.UUID
	propertyID  uuid.UUID
}

func (s *PricingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.roomID = uuid.New()
	s.propertyID = uuid.New()
	h := api.NewPricingHandler(s.mockQueries)

	s.router.GET("/rooms/:roomId/price", h.Quote)
	s.router.GET("/rooms/:roomId/availability", h.Availability)
	s.router.GET("/properties/:propertyId/rooms/:roomId/calendar", h.Calendar)
}

func (s *PricingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPricingHandlerSuite(t *testing.T) {
	suite.Run(t, new(PricingHandlerTestSuite))
}

func (s *PricingHandlerTestSuite) TestQuote() {
	url := "/rooms/" + s.roomID.String() + "/price"

	s.Run("success: returns the stay total", func() {
		quote := &queries.PriceQuote{RoomID: s.roomID, CheckIn: "2025-12-01", CheckOut: "2025-12-04", Nights: 3, TotalPrice: 300000}
		s.mockQueries.EXPECT().QuotePrice(gomock.Any(), s.roomID, "2025-12-01", "2025-12-04").Return(quote, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?checkIn=2025-12-01&checkOut=2025-12-04", nil, "")

		var body resdto.PriceQuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(300000), body.TotalPrice)
		s.Equal(3, body.Nights)
	})

	s.Run("error: 400 when a date is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?checkIn=2025-12-01", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "checkIn and checkOut are required")
	})

	s.Run("error: 400 on a malformed room id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/nope/price?checkIn=2025-12-01&checkOut=2025-12-02", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid roomId")
	})

	s.Run("error: usecase errors map to statuses", func() {
		s.mockQueries.EXPECT().QuotePrice(gomock.Any(), s.roomID, "2025-12-04", "2025-12-01").
			Return(nil, errs.Validation("checkOut must be after checkIn")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?checkIn=2025-12-04&checkOut=2025-12-01", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "checkOut must be after checkIn")

		s.mockQueries.EXPECT().QuotePrice(gomock.Any(), s.roomID, gomock.Any(), gomock.Any()).
			Return(nil, shared.ErrRoomNotFound).Times(1)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?checkIn=2025-12-01&checkOut=2025-12-02", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "room not found")
	})
}

func (s *PricingHandlerTestSuite) TestAvailability() {
	url := "/rooms/" + s.roomID.String() + "/availability?checkIn=2025-12-01&checkOut=2025-12-04"

	view := &queries.AvailabilityView{RoomID: s.roomID, CheckIn: "2025-12-01", CheckOut: "2025-12-04", IsAvailable: false}
	s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), s.roomID, "2025-12-01", "2025-12-04").Return(view, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

	var body map[string]any
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(false, body["isAvailable"])
	s.Equal("2025-12-01", body["checkIn"])
}

func (s *PricingHandlerTestSuite) TestCalendar() {
	url := "/properties/" + s.propertyID.String() + "/rooms/" + s.roomID.String() + "/calendar"

	s.Run("success: returns one entry per day", func() {
		days := []queries.CalendarDayView{
			{Date: "2025-12-01", Price: 100000, IsAvailable: true},
			{Date: "2025-12-06", Price: 100000, IsAvailable: false, IsWeekend: true},
		}
		s.mockQueries.EXPECT().MonthCalendar(gomock.Any(), s.propertyID, s.roomID, "2025-12").Return(days, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?month=2025-12", nil, "")

		var body []resdto.CalendarDayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("2025-12-06", body[1].Date)
		s.True(body[1].IsWeekend)
		s.False(body[1].IsAvailable)
	})

	s.Run("error: 400 without month", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "month is required")
	})

	s.Run("error: 404 when the room is not in the property", func() {
		s.mockQueries.EXPECT().MonthCalendar(gomock.Any(), s.propertyID, s.roomID, "2025-12").
			Return(nil, shared.ErrRoomNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?month=2025-12", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "room not found")
	})
}
