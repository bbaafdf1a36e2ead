package http

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"expense-tracker/internal/advice"
	"expense-tracker/internal/chart"
	"expense-tracker/internal/domain"
	"expense-tracker/internal/service"
	"expense-tracker/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	expenses  service.ExpenseService
	adviser   advice.Generator
	storage   storage.Service
	bucket    string
	keyPrefix string
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	expenses service.ExpenseService,
	adviser advice.Generator,
	store storage.Service,
	bucket, keyPrefix string,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:     users,
		expenses:  expenses,
		adviser:   adviser,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RegisterRoutes mounts all API routes. Paths mirror the public API and must
// not change.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.requestLogger())

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := router.Group("/", h.requireAuth())
	{
		authed.POST("/expense", h.logExpense)
		authed.GET("/expenses", h.listExpenses)
		authed.GET("/expenses/monthly", h.monthlyReport)
		authed.POST("/pie_chart", h.pieChart)
		authed.POST("/gemini_advice", h.geminiAdvice)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Chart-Location")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		c.Next()

		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

type logExpenseRequest struct {
	Category string   `json:"category" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Date     string   `json:"date" binding:"required"`
}

func (h *Handler) logExpense(c *gin.Context) {
	var req logExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category, amount and date are required"})
		return
	}

	_, err := h.expenses.Log(c.Request.Context(), currentUserID(c), req.Category, *req.Amount, req.Date)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Expense logged successfully"})
}

type ExpenseResponse struct {
	ID       int64   `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.expenses.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = expenseToResponse(expenses[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) monthlyReport(c *gin.Context) {
	now := time.Now()
	year, ok := intQuery(c, "year", now.Year())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, ok := intQuery(c, "month", int(now.Month()))
	if !ok || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	total, err := h.expenses.MonthlyTotal(c.Request.Context(), currentUserID(c), year, month)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_spending": total})
}

func (h *Handler) pieChart(c *gin.Context) {
	userID := currentUserID(c)

	totals, err := h.expenses.CategoryBreakdown(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	png, err := chart.RenderPie(totals)
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no expenses to chart"})
			return
		}
		h.renderError(c, err)
		return
	}

	if c.Query("store") == "true" && h.storage != nil && h.bucket != "" {
		key := path.Join(h.keyPrefix, fmt.Sprintf("user-%d", userID), uuid.NewString()+".png")
		location, err := h.storage.PutObject(c.Request.Context(), h.bucket, key, "image/png", png)
		if err != nil {
			h.logger.WithError(err).Warn("archive chart image")
		} else {
			c.Header("X-Chart-Location", location)
		}
	}

	c.Data(http.StatusOK, "image/png", png)
}

type adviceExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type adviceRequest struct {
	Expenses []adviceExpense `json:"expenses" binding:"required"`
}

func (h *Handler) geminiAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expenses list is required"})
		return
	}

	if h.adviser == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "advice service not configured"})
		return
	}

	items := make([]advice.ExpenseItem, len(req.Expenses))
	for i, e := range req.Expenses {
		items[i] = advice.ExpenseItem{Category: e.Category, Amount: e.Amount}
	}

	text, err := h.adviser.Generate(c.Request.Context(), advice.BuildPrompt(items))
	if err != nil {
		h.logger.WithError(err).Error("advice generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate advice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": text})
}

// renderError maps service failures to a closed set of responses. Internal
// detail goes to the log, never to the client.
func (h *Handler) renderError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func expenseToResponse(expense domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       expense.ID,
		Category: expense.Category,
		Amount:   expense.Amount,
		Date:     expense.Date.Format(domain.DateLayout),
	}
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
