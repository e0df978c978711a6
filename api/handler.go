package api

import (
	"errors"
	"net/http"

	"investpro/chat"
	"investpro/customerrors"
	"investpro/dashboard"
	"investpro/models"
	"investpro/search"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the visitor session id in both directions.
const SessionHeader = "X-Session-ID"

const dashboardKey = "dashboard"

type Handler struct {
	Engine   search.SearchEngine
	Market   models.MarketOverview
	Sessions *dashboard.SessionStore
}

func NewHandler(engine search.SearchEngine, market models.MarketOverview, sessions *dashboard.SessionStore) *Handler {
	return &Handler{Engine: engine, Market: market, Sessions: sessions}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	router.GET("/stocks", h.listStocks)
	router.GET("/stocks/:id", h.getStock)
	router.GET("/sectors", h.sectors)
	router.GET("/market", h.market)

	session := router.Group("/session", h.withSession)
	{
		session.GET("", h.getSession)
		session.POST("/select", h.selectStock)
		session.POST("/dismiss", h.dismiss)
		session.GET("/chat", h.getChat)
		session.POST("/chat", h.sendChat)
		session.POST("/chat/toggle", h.toggleChat)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.Status(http.StatusOK)
}

type stocksQuery struct {
	Text   string `form:"q"`
	Sector string `form:"sector"`
	Sort   string `form:"sort"`
}

func (h *Handler) listStocks(c *gin.Context) {
	var params stocksQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sortBy, err := search.ParseSortKey(params.Sort)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.Engine.Search(search.Query{Text: params.Text, Sector: params.Sector, SortBy: sortBy})
	c.JSON(http.StatusOK, results)
}

// getStock looks the record up by id, then by symbol.
func (h *Handler) getStock(c *gin.Context) {
	key := c.Param("id")
	stock := h.Engine.GetByID(key)
	if stock == nil {
		stock = h.Engine.GetBySymbol(key)
	}
	if stock == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock not found: " + key})
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *Handler) sectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Sectors())
}

func (h *Handler) market(c *gin.Context) {
	c.JSON(http.StatusOK, h.Market)
}

func (h *Handler) withSession(c *gin.Context) {
	id, d := h.Sessions.Get(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, id)
	c.Set(dashboardKey, d)
	c.Next()
}

func currentDashboard(c *gin.Context) *dashboard.Dashboard {
	return c.MustGet(dashboardKey).(*dashboard.Dashboard)
}

type sessionView struct {
	ID       string        `json:"id"`
	Selected *models.Stock `json:"selected"`
	ChatOpen bool          `json:"chatOpen"`
}

func (h *Handler) viewSession(c *gin.Context) sessionView {
	d := currentDashboard(c)
	view := sessionView{ID: c.Writer.Header().Get(SessionHeader), ChatOpen: d.ChatOpen()}
	if stock, ok := d.Selected(); ok {
		view.Selected = &stock
	}
	return view
}

func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewSession(c))
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) selectStock(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := currentDashboard(c).Select(req.ID); err != nil {
		if errors.Is(err, customerrors.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.viewSession(c))
}

func (h *Handler) dismiss(c *gin.Context) {
	currentDashboard(c).Dismiss()
	c.JSON(http.StatusOK, h.viewSession(c))
}

func (h *Handler) toggleChat(c *gin.Context) {
	currentDashboard(c).ToggleChat()
	c.JSON(http.StatusOK, h.viewSession(c))
}

type chatView struct {
	Expanded       bool                 `json:"expanded"`
	State          chat.ExchangeState   `json:"state"`
	Messages       []models.ChatMessage `json:"messages"`
	QuickQuestions []string             `json:"quickQuestions"`
}

func (h *Handler) getChat(c *gin.Context) {
	session := currentDashboard(c).Chat()
	c.JSON(http.StatusOK, chatView{
		Expanded:       session.Expanded(),
		State:          session.State(),
		Messages:       session.Transcript(),
		QuickQuestions: session.QuickQuestions(),
	})
}

type sendRequest struct {
	Text string `json:"text"`
}

type sendResponse struct {
	Accepted bool                `json:"accepted"`
	Message  *models.ChatMessage `json:"message,omitempty"`
}

// sendChat queues a message. The reply shows up in GET /session/chat once it is "typed".
func (h *Handler) sendChat(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exchange, ok := currentDashboard(c).Chat().Send(req.Text)
	if !ok {
		c.JSON(http.StatusOK, sendResponse{Accepted: false})
		return
	}
	c.JSON(http.StatusAccepted, sendResponse{Accepted: true, Message: &exchange.Message})
}
