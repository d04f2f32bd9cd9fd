package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

const postEventsMaxSize = 1 << 20

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, b Board, logger *log.Logger) {
	e.GET("/api/board", getBoard(b, logger))
	e.GET("/api/tasks", getTasks(b))
	e.POST("/api/tasks", postTask(b))
	e.POST("/api/events", postEvents(b, logger))
	e.GET("/api/theme", getTheme(b))
	e.PUT("/api/theme", putTheme(b))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}
}

func getBoard(b Board, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		renderStart := time.Now()
		tree := b.RenderBoard()
		metrics.ObserveRender(time.Since(renderStart))
		metrics.SetCardsRendered(len(tree.FindAll("data-task-id")))

		writeStart := time.Now()
		err = c.HTML(http.StatusOK, tree.HTML())
		metrics.ObserveWrite(time.Since(writeStart))
		if err != nil {
			metrics.SetErrorStage("write_response")
		}
		return err
	}
}

type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

func getTasks(b Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, tasksResponse{Tasks: b.Tasks()})
	}
}

type newTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func postTask(b Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req newTaskRequest
		dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, postEventsMaxSize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		t, err := b.SubmitTask(c.Request().Context(), req.Title, req.Description)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyTitle) {
				return c.String(http.StatusBadRequest, err.Error())
			}
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusCreated, t)
	}
}

type eventResult struct {
	Error string `json:"error,omitempty"`
}

type eventsResponse struct {
	Applied int           `json:"applied"`
	Results []eventResult `json:"results"`
	Board   string        `json:"board"`
}

func postEvents(b Board, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, postEventsMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		events := make([]Event, 0, 4)
		if err := dec.Decode(&events); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		ctx := c.Request().Context()
		resp := eventsResponse{Results: make([]eventResult, len(events))}
		for i, ev := range events {
			if err := apply(ctx, b, ev); err != nil {
				logger.Debugf("api: event %d (%s) rejected: %v", i, ev.Type, err)
				resp.Results[i].Error = err.Error()
				continue
			}
			resp.Applied++
		}
		resp.Board = b.RenderBoard().HTML()
		return c.JSON(http.StatusOK, resp)
	}
}

type themeResponse struct {
	Theme string `json:"theme"`
	Name  string `json:"name"`
}

func getTheme(b Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		theme := b.Theme()
		return c.JSON(http.StatusOK, themeResponse{Theme: theme, Name: domain.Themes[theme]})
	}
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func putTheme(b Board) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req themeRequest
		dec := sonic.ConfigStd.NewDecoder(io.LimitReader(c.Request().Body, postEventsMaxSize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if err := b.SetTheme(c.Request().Context(), req.Theme); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, themeResponse{Theme: req.Theme, Name: domain.Themes[req.Theme]})
	}
}
