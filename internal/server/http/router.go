package internalhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lomoval/menu-events/internal/app"
	"github.com/lomoval/menu-events/internal/auth"
)

func NewRouter(application *app.App, authenticator *auth.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), loggingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{app: application}
	menus := r.Group("/", authenticator.RequireUser())
	menus.GET("/", h.home)
	menus.GET("/search_wizard/", h.searchForm)
	menus.POST("/search_wizard/", h.search)
	menus.GET("/events/:category/", h.eventsByCategory)
	menus.GET("/event/:id/", h.eventDetails)
	menus.GET("/add_event", h.addEventForm)
	menus.POST("/add_event", auth.RequireStaff(), h.addEvent)
	menus.GET("/edit_event/:id/:field", h.editMenu)
	menus.POST("/edit_event/:id/:field", auth.RequireStaff(), h.editField)
	menus.DELETE("/edit_event/:id/:field", auth.RequireStaff(), h.deleteEvent)
	return r
}
