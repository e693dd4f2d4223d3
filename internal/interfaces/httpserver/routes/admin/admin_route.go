package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-server/internal/config"
	"studio-server/internal/interfaces/httpserver/handlers/adminhandler"
	"studio-server/internal/interfaces/httpserver/middlewares"
	"studio-server/internal/interfaces/httpserver/requests/messagereq"
	"studio-server/internal/interfaces/httpserver/responses"
	"studio-server/internal/utils/platformerrors"
)

// AdminRoute is the dashboard API, guarded by the static admin bearer.
type AdminRoute struct {
	handler *adminhandler.AdminHandler
	cfg     *config.Config
}

func NewAdminRoute(handler *adminhandler.AdminHandler, cfg *config.Config) *AdminRoute {
	return &AdminRoute{
		handler: handler,
		cfg:     cfg,
	}
}

// RegisterRoutes registers the admin routes
func (r *AdminRoute) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/api/admin")
	adminGroup.Use(middlewares.RequireAdmin(r.cfg))

	adminGroup.GET("/conversations", r.listConversations)
	adminGroup.GET("/conversations/:project_id/messages", r.history)
	adminGroup.POST("/conversations/:project_id/messages", r.sendMessage)
	adminGroup.POST("/conversations/:project_id/archive", r.archive)
	adminGroup.POST("/conversations/:project_id/read", r.markRead)
}

// listConversations returns conversations, newest first.
func (r *AdminRoute) listConversations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.ListConversations(ctx, reqCtx.Query("status"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// history returns a conversation transcript.
func (r *AdminRoute) history(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.History(ctx, reqCtx.Param("project_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to load messages")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// sendMessage appends a staff reply.
func (r *AdminRoute) sendMessage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req messagereq.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "admin-msg-001")
		return
	}

	response, err := r.handler.SendMessage(ctx, reqCtx.Param("project_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to send message")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// archive revokes a conversation's token.
func (r *AdminRoute) archive(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := r.handler.Archive(ctx, reqCtx.Param("project_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to archive conversation")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// markRead stamps read receipts on a conversation's client messages.
func (r *AdminRoute) markRead(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := r.handler.MarkRead(ctx, reqCtx.Param("project_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to mark messages read")
		return
	}

	reqCtx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
