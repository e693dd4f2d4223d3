package public

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-server/internal/interfaces/httpserver/handlers/appointmenthandler"
	"studio-server/internal/interfaces/httpserver/handlers/messagehandler"
	"studio-server/internal/interfaces/httpserver/handlers/sockethandler"
	"studio-server/internal/interfaces/httpserver/handlers/tokenhandler"
	"studio-server/internal/interfaces/httpserver/handlers/webhookhandler"
	"studio-server/internal/interfaces/httpserver/requests/appointmentreq"
	"studio-server/internal/interfaces/httpserver/requests/messagereq"
	"studio-server/internal/interfaces/httpserver/requests/tokenreq"
	"studio-server/internal/interfaces/httpserver/requests/webhookreq"
	"studio-server/internal/interfaces/httpserver/responses"
	"studio-server/internal/interfaces/httpserver/responses/appointmentres"
	"studio-server/internal/utils/platformerrors"
)

// PublicRoute carries everything reachable without the admin bearer: entry
// flows, the token-scoped widget surface, booking and webhooks.
type PublicRoute struct {
	tokens       *tokenhandler.TokenHandler
	messages     *messagehandler.MessageHandler
	appointments *appointmenthandler.AppointmentHandler
	webhooks     *webhookhandler.WebhookHandler
	socket       *sockethandler.SocketHandler
}

func NewPublicRoute(
	tokens *tokenhandler.TokenHandler,
	messages *messagehandler.MessageHandler,
	appointments *appointmenthandler.AppointmentHandler,
	webhooks *webhookhandler.WebhookHandler,
	socket *sockethandler.SocketHandler,
) *PublicRoute {
	return &PublicRoute{
		tokens:       tokens,
		messages:     messages,
		appointments: appointments,
		webhooks:     webhooks,
		socket:       socket,
	}
}

// RegisterRoutes registers the public routes
func (r *PublicRoute) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", r.socket.Serve)

	api := rg.Group("/api")
	api.POST("/token", r.entry)
	api.GET("/public/project/:token/messages", r.history)
	api.POST("/public/project/:token/messages", r.send)
	api.POST("/book-appointment", r.bookAppointment)
	api.GET("/availability/:date", r.availability)
	api.POST("/webhooks/squarespace", r.squarespaceWebhook)
	api.POST("/webhooks/acuity", r.acuityWebhook)
}

// entry dispatches the admin/member/project/validate flows.
func (r *PublicRoute) entry(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req tokenreq.TokenRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "token-entry-001")
		return
	}

	response, err := r.tokens.Entry(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process entry request")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// history returns the transcript for a conversation token.
func (r *PublicRoute) history(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.messages.History(ctx, reqCtx.Param("token"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to load messages")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// send appends a client message to the conversation the token names.
func (r *PublicRoute) send(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req messagereq.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "msg-send-001")
		return
	}

	response, err := r.messages.Send(ctx, reqCtx.Param("token"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to send message")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// bookAppointment runs the proposed slot through the collision check. A
// rejected slot is a 409 with the open alternatives.
func (r *PublicRoute) bookAppointment(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req appointmentreq.BookAppointmentRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "appt-book-001")
		return
	}

	response, decision, err := r.appointments.Book(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to book appointment")
		return
	}
	if !decision.Admitted {
		reqCtx.JSON(http.StatusConflict, appointmentres.ConflictResponse{
			Error:                 "TIME_SLOT_UNAVAILABLE",
			AvailableAlternatives: decision.AvailableAlternatives,
		})
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// availability lists the open slots for a day.
func (r *PublicRoute) availability(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.appointments.Availability(ctx, reqCtx.Param("date"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to load availability")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// squarespaceWebhook ingests a form submission delivery.
func (r *PublicRoute) squarespaceWebhook(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req webhookreq.SquarespaceSubmission
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "wh-sqsp-001")
		return
	}

	response, err := r.webhooks.Squarespace(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process webhook")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// acuityWebhook ingests an appointment event delivery.
func (r *PublicRoute) acuityWebhook(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req webhookreq.AcuityEvent
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "wh-acuity-001")
		return
	}

	response, decision, err := r.webhooks.Acuity(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process webhook")
		return
	}
	if decision != nil && !decision.Admitted {
		reqCtx.JSON(http.StatusConflict, appointmentres.ConflictResponse{
			Error:                 "TIME_SLOT_UNAVAILABLE",
			AvailableAlternatives: decision.AvailableAlternatives,
		})
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
