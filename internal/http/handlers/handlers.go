package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ishistore/backend/internal/ai"
	"github.com/ishistore/backend/internal/assistant"
	"github.com/ishistore/backend/internal/db"
	"github.com/ishistore/backend/internal/models"
)

type Handler struct {
	Store     *db.Store
	Assistant *assistant.Service
	Validator *validator.Validate
	Logger    zerolog.Logger

	// resolved once at startup; when false the chat endpoint refuses
	// requests before any outbound call
	AssistantConfigured bool

	// upper bound for the outbound completion call; zero means no cap
	RequestTimeout time.Duration
}

type ChatRequest struct {
	Message string              `json:"message" validate:"required"`
	History []ai.ChatMessage    `json:"history"`
	Context *models.ChatContext `json:"context"`
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Chat with the sales assistant
// @Description Forwards a customer turn plus commerce context to the completion service and returns a structured reply
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ChatRequest true "chat turn"
// @Success 200 {object} models.AssistantReply
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/assistant/chat [post]
func (h *Handler) AssistantChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}
	if err := h.Validator.Struct(req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}
	if !h.AssistantConfigured {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is not configured"})
		return
	}

	chatCtx := models.ChatContext{}
	if req.Context != nil {
		chatCtx = *req.Context
	} else if h.Store != nil {
		customerID := strings.TrimSpace(c.Query("customer_id"))
		chatCtx = h.Store.ContextSnapshot(c.Request.Context(), customerID)
	}

	ctx := c.Request.Context()
	if h.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.RequestTimeout)
		defer cancel()
	}

	reply, err := h.Assistant.Respond(ctx, req.Message, req.History, chatCtx)
	if err != nil {
		h.Logger.Error().Err(err).Msg("assistant completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant service failed"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/products [get]
func (h *Handler) ProductsList(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Catalog is not configured", nil)
		return
	}
	category := strings.TrimSpace(c.Query("category"))
	q := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListProducts(c.Request.Context(), category, q, limit, offset)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list products", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// @Summary List support tickets
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/tickets [get]
func (h *Handler) TicketsList(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Ticket store is not configured", nil)
		return
	}
	customerID := strings.TrimSpace(c.Query("customer_id"))
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Store.ListTickets(c.Request.Context(), customerID, status, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list tickets", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) CustomerGet(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Customer store is not configured", nil)
		return
	}
	id := c.Param("id")
	customer, err := h.Store.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to get customer", err.Error())
		return
	}
	c.JSON(http.StatusOK, customer)
}

type CreateTicketRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
}

// @Summary Create a support ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "ticket"
// @Success 200 {object} models.SupportTicket
// @Router /api/tickets [post]
func (h *Handler) TicketCreate(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Ticket store is not configured", nil)
		return
	}
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	ticket, err := h.Store.CreateTicket(c.Request.Context(), req.CustomerID, req.Subject)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *Handler) TicketClose(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Ticket store is not configured", nil)
		return
	}
	id := c.Param("id")
	if err := h.Store.CloseTicket(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found or already closed", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to close ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
