package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/app/services"
	"github.com/omnalage/skill-exchange-platform/internal/middleware"
)

// ConnectionController handles connection request operations
type ConnectionController struct {
	connectionService services.ConnectionService
	logger            zerolog.Logger
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService services.ConnectionService, logger zerolog.Logger) *ConnectionController {
	return &ConnectionController{
		connectionService: connectionService,
		logger:            logger,
	}
}

// SendRequest creates a pending connection request
// @Summary Send a connection request
// @Tags connections
// @Accept json
// @Produce json
// @Param request body dto.SendRequestRequest true "Sender and receiver ids"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Self request"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Failure 409 {object} dto.ErrorResponse "Pending request already exists"
// @Router /connection/send-request [post]
func (c *ConnectionController) SendRequest(ctx *gin.Context) {
	var req dto.SendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.connectionService.SendRequest(ctx.Request.Context(), req.SenderID, req.ReceiverID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Message: "Connection request sent"})
}

// UpdateStatus resolves a pending connection request
// @Summary Accept or reject a connection request
// @Tags connections
// @Accept json
// @Produce json
// @Param request body dto.UpdateStatusRequest true "Resolution"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "No pending request for the pair"
// @Router /connection/update-status [post]
func (c *ConnectionController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.connectionService.UpdateStatus(ctx.Request.Context(), req.SenderID, req.ReceiverID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Connection request " + req.Status})
}

// GetPendingRequests lists requests awaiting the receiver's decision
// @Summary List pending connection requests
// @Tags connections
// @Produce json
// @Param receiverId path int true "Receiver user ID"
// @Success 200 {array} dto.PendingRequestResponse
// @Router /connection/pending-requests/{receiverId} [get]
func (c *ConnectionController) GetPendingRequests(ctx *gin.Context) {
	receiverID, err := parseIDParam(ctx, "receiverId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pending, err := c.connectionService.GetPendingRequests(ctx.Request.Context(), receiverID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, pending)
}

// GetConnectedUsers lists the peers of accepted connections
// @Summary List connected users
// @Tags connections
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} dto.UserProfileResponse
// @Router /connection/connected-users/{userId} [get]
func (c *ConnectionController) GetConnectedUsers(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	users, err := c.connectionService.GetConnectedUsers(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
