//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"staybook/internal/domain/booking"
	"staybook/internal/handler/api"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/middleware"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"
	"staybook/tests/common/builder"
	"staybook/tests/common/httptest"
	"staybook/tests/common/testutil"
	commandsmock "staybook/tests/mock/commands"
	queriesmock "staybook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testRoleHeader = "X-Test-Role"

// fakeAuth stands in for AuthMiddleware: any bearer token authenticates as
// actorID, with the role taken from X-Test-Role (guest by default).
func fakeAuth(actorID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		role := booking.RoleGuest
		if r := c.GetHeader(testRoleHeader); r != "" {
			role = booking.Role(r)
		}
		middleware.SetActor(c, actorID, role)
		c.Next()
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	actorID      uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.actorID = uuid.New()
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(s.actorID)
	s.router.POST("/bookings", auth, h.Create)
	s.router.GET("/bookings", auth, h.ListMine)
	s.router.GET("/bookings/:id", auth, h.Get)
	s.router.POST("/bookings/:id/payment-proof", auth, h.UploadPaymentProof)
	s.router.POST("/bookings/:id/confirm", auth, h.Confirm)
	s.router.POST("/bookings/:id/cancel", auth, h.Cancel)
	s.router.POST("/bookings/:id/complete", auth, h.Complete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) idemHeaders() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("success: returns 201 Created with Location", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand(), s.actorID, key).
			Return(&commands.CreateBookingResult{Booking: view}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": key.String()})

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.TotalPrice, body.TotalPrice)
		s.Equal("PENDING_PAYMENT", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + view.ID.String()})
	})

	s.Run("success: replay returns 200 with the original booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idemHeaders())

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: notes are trimmed before reaching the usecase", func() {
		padded := testutil.DtoMap(s.T(), reqBody, testutil.Field("notes", "  quiet room  "))
		want := reqBody.ToCommand()
		want.Notes = "quiet room"
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), want, s.actorID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: view}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, padded, "bearer-token", s.idemHeaders())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 on missing or malformed Idempotency-Key", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")

		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "UUID")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: roomId", mutate: testutil.Field("roomId", nil)},
			{name: "missing field: propertyId", mutate: testutil.Field("propertyId", nil)},
			{name: "missing field: checkIn", mutate: testutil.Field("checkIn", nil)},
			{name: "missing field: checkOut", mutate: testutil.Field("checkOut", nil)},
			{name: "guests below 1", mutate: testutil.Field("guests", 0)},
			{name: "roomId not a uuid", mutate: testutil.Field("roomId", "room-1")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", s.idemHeaders())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", s.idemHeaders())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "room taken", commandsError: shared.ErrRoomUnavailable, expectedStatus: http.StatusConflict, expectedMsg: "not available"},
			{name: "unknown room", commandsError: shared.ErrRoomNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "room not found"},
			{name: "key in flight", commandsError: shared.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict, expectedMsg: "still being processed"},
			{name: "internal failure", commandsError: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", s.idemHeaders())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "connection reset")
			})
		}
	})
}

// ================================================================================
// TestGet / TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("success: passes actor and role to the query", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID, booking.RoleTenant).Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, url, nil, "bearer-token",
			map[string]string{testRoleHeader: "tenant"})

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.CheckIn, body.CheckIn)
		s.Equal(view.Nights, body.Nights)
	})

	s.Run("error: 404 when hidden or missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID, s.actorID, booking.RoleGuest).
			Return(nil, shared.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/abc", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	items := []*queries.BookingListItem{
		{ID: uuid.New(), CheckIn: "2025-12-01", CheckOut: "2025-12-03", TotalPrice: 200000, Status: "CONFIRMED"},
		{ID: uuid.New(), CheckIn: "2025-11-01", CheckOut: "2025-11-02", TotalPrice: 100000, Status: "CANCELLED"},
	}

	s.Run("success: returns the page and next cursor", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID, &queries.Cursor{After: "abc"}, 2).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=2&after=abc", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Bookings, 2)
		s.Equal(items[0].ID, body.Bookings[0].ID)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
	})

	s.Run("success: empty list encodes as an array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID, nil, 0).Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.True(strings.Contains(rec.Body.String(), `"bookings":[]`), rec.Body.String())
	})

	s.Run("error: 400 on bad cursor", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?after=zzz", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

// ================================================================================
// Transitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestTransitions() {
	view := builder.NewBookingBuilder().BuildView()
	base := "/bookings/" + view.ID.String()

	s.Run("payment proof", func() {
		s.mockCommands.EXPECT().UploadPaymentProof(gomock.Any(), view.ID, s.actorID, "receipt-42").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/payment-proof",
			map[string]string{"proofRef": "receipt-42"}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/payment-proof", map[string]string{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("confirm forwards the role", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), view.ID, booking.RoleTenant).Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, base+"/confirm", nil, "bearer-token",
			map[string]string{testRoleHeader: "tenant"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("cancel by a stranger is forbidden", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.actorID, booking.RoleGuest).
			Return(nil, shared.ErrBookingAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another user")
	})

	s.Run("complete on a stale state conflicts", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), view.ID, booking.RoleTenant).
			Return(nil, shared.ErrBookingStateChanged).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, base+"/complete", nil, "bearer-token",
			map[string]string{testRoleHeader: "tenant"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "modified concurrently")
	})
}
