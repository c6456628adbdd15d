package dashboard

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binhbb2204/movie-stats-viz/internal/websocket"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type menuItem struct {
	Key   string
	Label string
}

type pageData struct {
	Title       string
	Menu        []menuItem
	Unreachable string
}

type Handler struct {
	controller *Controller
	ws         *websocket.Server
}

// NewHandler wires the controller to the websocket server so every snapshot
// change is pushed to open pages.
func NewHandler(controller *Controller, ws *websocket.Server) *Handler {
	h := &Handler{controller: controller, ws: ws}
	if ws != nil {
		ws.Welcome = func() interface{} { return controller.Snapshot() }
		controller.Subscribe(func(s Snapshot) {
			ws.Publish(websocket.MessageTypeSnapshot, s)
		})
	}
	return h
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/snapshot", h.GetSnapshot)
	r.POST("/select/:category", h.Select)
	if h.ws != nil {
		r.GET("/ws", h.ws.HandleWebSocket)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})
}

func (h *Handler) Index(c *gin.Context) {
	data := pageData{Title: "Douban Movie Statistics", Unreachable: NoticeDashboardUnreachable}
	for _, cat := range models.Categories {
		data.Menu = append(data.Menu, menuItem{Key: string(cat), Label: cat.MenuLabel()})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplate.Execute(c.Writer, data); err != nil {
		h.controller.log.Error("dashboard_render_failed", "error", err.Error())
	}
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Select answers with the resulting snapshot. A failed fetch is still 200;
// the failure travels in the snapshot's notice.
func (h *Handler) Select(c *gin.Context) {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, _ := h.controller.Select(c.Request.Context(), category)
	c.JSON(http.StatusOK, snap)
}
