package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/stitts-dev/efootball-stats/internal/chat"
	"github.com/stitts-dev/efootball-stats/internal/models"
	"github.com/stitts-dev/efootball-stats/internal/services"
	"github.com/stitts-dev/efootball-stats/pkg/utils"
)

// MaxChatMessageLength bounds a single chat message in runes.
const MaxChatMessageLength = 500

type ChatHandler struct {
	store    *services.PlayerStore
	resolver *chat.Resolver
	logger   *logrus.Logger
}

func NewChatHandler(store *services.PlayerStore, resolver *chat.Resolver, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		store:    store,
		resolver: resolver,
		logger:   logger,
	}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Ask resolves one message against the current dataset. The reply is always
// 200 with text; only malformed requests fail.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		utils.SendValidationError(c, "Message is required", "message must not be blank")
		return
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		utils.SendValidationError(c, "Message too long", fmt.Sprintf("message exceeds %d characters", MaxChatMessageLength))
		return
	}

	ctx := c.Request.Context()
	players, err := h.store.Snapshot(ctx)
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	reply := h.resolver.Resolve(ctx, message, players)

	entry := &models.ChatLog{
		Query:    message,
		Intent:   string(reply.Intent),
		Source:   string(reply.Source),
		Response: reply.Text,
		ClientIP: c.ClientIP(),
	}
	if len(reply.PlayerIDs) > 0 {
		if raw, err := json.Marshal(gin.H{"player_ids": reply.PlayerIDs}); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	if err := h.store.LogChat(ctx, entry); err != nil {
		h.logger.WithError(err).Warn("Failed to record chat log")
	}

	utils.SendSuccess(c, reply)
}

// GetQuestions lists the one-tap questions.
func (h *ChatHandler) GetQuestions(c *gin.Context) {
	utils.SendSuccess(c, chat.Questions)
}
