package internalhttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"github.com/lomoval/menu-events/internal/app"
	"github.com/lomoval/menu-events/internal/auth"
	"github.com/lomoval/menu-events/internal/menu"
	"github.com/lomoval/menu-events/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	contentTypeJSON     = "application/json"
	multipartFormMemory = 1 << 20
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type searchInput struct {
	Keyword *string `schema:"keyword"`
}

type handlers struct {
	app *app.App
}

func (h *handlers) home(c *gin.Context) {
	buckets, err := h.app.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	notices := h.app.TakeNotices(c.Request.Context())
	render(c, menu.Home(buckets, auth.CurrentUser(c).IsStaff, notices))
}

func (h *handlers) searchForm(c *gin.Context) {
	render(c, menu.SearchForm())
}

func (h *handlers) search(c *gin.Context) {
	in := searchInput{}
	if err := decodeForm(c, &in); err != nil || in.Keyword == nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	events, err := h.app.Search(c.Request.Context(), *in.Keyword)
	if err != nil {
		fail(c, err)
		return
	}
	if len(events) == 0 {
		render(c, menu.SearchNoResults())
		return
	}
	render(c, menu.SearchResults(*in.Keyword, events))
}

func (h *handlers) eventsByCategory(c *gin.Context) {
	events, err := h.app.EventsByCategory(c.Request.Context(), app.ParseCategory(c.Param("category")))
	if err != nil {
		fail(c, err)
		return
	}
	render(c, menu.EventList(events))
}

func (h *handlers) eventDetails(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.app.Event(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFoundEvent) {
		render(c, menu.EventUnavailable())
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, menu.EventDetails(e, auth.CurrentUser(c).IsStaff))
}

func (h *handlers) addEventForm(c *gin.Context) {
	render(c, menu.AddEventForm())
}

func (h *handlers) addEvent(c *gin.Context) {
	in := app.EventInput{}
	if err := decodeForm(c, &in); err != nil {
		log.Infof("failed to decode new event form: %v", err)
		render(c, menu.AddEventFailed())
		return
	}
	if _, err := h.app.AddEvent(c.Request.Context(), auth.CurrentUser(c), in); err != nil {
		logRejected("add", err)
		render(c, menu.AddEventFailed())
		return
	}
	c.Redirect(http.StatusFound, menu.HomePath)
}

func (h *handlers) editMenu(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.app.Event(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFoundEvent) {
		render(c, menu.EditUnavailable())
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	render(c, menu.EditMenu(e))
}

// editField shows the prompt for the field until a value for it is sent.
func (h *handlers) editField(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	field, err := app.ParseField(c.Param("field"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	in := app.EventInput{}
	if err := decodeForm(c, &in); err != nil {
		log.Infof("failed to decode edit form: %v", err)
		render(c, menu.EditEventFailed())
		return
	}

	ctx := c.Request.Context()
	value := in.Value(field)
	if value == nil {
		e, err := h.app.Event(ctx, id)
		if errors.Is(err, storage.ErrNotFoundEvent) {
			render(c, menu.EditUnavailable())
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		render(c, menu.FieldPrompt(e, field))
		return
	}

	_, err = h.app.EditField(ctx, auth.CurrentUser(c), id, field, *value)
	if errors.Is(err, storage.ErrNotFoundEvent) {
		render(c, menu.EditUnavailable())
		return
	}
	if err != nil {
		logRejected("edit", err)
		render(c, menu.EditEventFailed())
		return
	}
	c.Redirect(http.StatusFound, menu.HomePath)
}

func (h *handlers) deleteEvent(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	err := h.app.DeleteEvent(c.Request.Context(), auth.CurrentUser(c), id)
	if errors.Is(err, storage.ErrNotFoundEvent) {
		render(c, menu.EditUnavailable())
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, menu.HomePath)
}

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func decodeForm(c *gin.Context, dst interface{}) error {
	err := c.Request.ParseMultipartForm(multipartFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return decoder.Decode(dst, c.Request.PostForm)
}

func render(c *gin.Context, d menu.Document) {
	body, err := d.Response().JSON()
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeJSON, body)
}

func fail(c *gin.Context, err error) {
	log.Errorf("failed to process %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func logRejected(op string, err error) {
	var (
		parseErr      *app.ParseError
		validationErr *app.ValidationError
		storeErr      *app.StoreError
	)
	switch {
	case errors.As(err, &parseErr):
		log.Infof("%s event rejected, bad input: %v", op, parseErr)
	case errors.As(err, &validationErr):
		log.Infof("%s event rejected, invalid event: %v", op, validationErr)
	case errors.As(err, &storeErr):
		log.Errorf("%s event failed in storage: %v", op, storeErr)
	default:
		log.Errorf("%s event failed: %v", op, err)
	}
}
