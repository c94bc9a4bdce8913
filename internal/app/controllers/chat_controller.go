package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/app/repositories"
	"github.com/omnalage/skill-exchange-platform/internal/app/services"
	"github.com/omnalage/skill-exchange-platform/internal/middleware"
)

// ChatController handles the durable conversation log over REST. Realtime
// delivery happens on the websocket; this controller owns reads and writes.
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// GetMessages returns the conversation history between two users
// @Summary Get conversation history
// @Description Returns the messages between user1 and user2, oldest first. The pair is unordered.
// @Tags chat
// @Produce json
// @Param user1 path int true "First participant ID"
// @Param user2 path int true "Second participant ID"
// @Param before query string false "Only messages strictly before this RFC3339 timestamp"
// @Param limit query int false "Return at most this many of the newest matching messages"
// @Success 200 {object} dto.MessageListResponse
// @Router /chat/{user1}/{user2} [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	user1, err := parseIDParam(ctx, "user1")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	user2, err := parseIDParam(ctx, "user2")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var query dto.GetMessagesRequest
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	filter := &repositories.MessageFilter{
		Before: query.Before,
		Limit:  query.Limit,
	}

	history, err := c.chatService.GetMessages(ctx.Request.Context(), user1, user2, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, history)
}

// UpdateChat appends a message to a conversation
// @Summary Append a chat message
// @Description Appends newMessage to the conversation between user1 and user2, creating the conversation on first contact. The caller must be user1.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.UpdateChatRequest true "Message to append"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Empty content or self message"
// @Router /chat/update-chat [put]
func (c *ChatController) UpdateChat(ctx *gin.Context) {
	var req dto.UpdateChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// The sender is always user1; stamping it from the authenticated caller
	// keeps the log honest regardless of the request body.
	senderID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		senderID = req.User1
	}
	receiverID := req.User2
	if senderID == req.User2 {
		receiverID = req.User1
	}

	if _, err := c.chatService.SendMessage(ctx.Request.Context(), senderID, receiverID, req.NewMessage.Content); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Message saved"})
}
