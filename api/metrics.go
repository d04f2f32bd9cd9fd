package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	boardSpanName    = "board.render"
	boardEventName   = "board.render"
	boardEventDomain = "kanban"
	boardRoute       = "/api/board"

	severityInfo        = "INFO"
	severityInfoNumber  = 9
	severityError       = "ERROR"
	severityErrorNumber = 17
)

// boardRequestMetrics collects per-request stage timings for the board
// render route and emits them as one observability event: a span on the
// active tracer plus a structured log entry carrying the same attributes.
type boardRequestMetrics struct {
	logger *log.Logger
	span   trace.Span
	start  time.Time

	renderDuration time.Duration
	writeDuration  time.Duration
	cardsRendered  int
	errorStage     string
}

func newBoardRequestMetrics(ctx context.Context, logger *log.Logger) (*boardRequestMetrics, context.Context) {
	m := &boardRequestMetrics{
		logger: logger,
		start:  time.Now(),
	}
	spanCtx, span := otel.Tracer("kanban-api/api").Start(ctx, boardSpanName)
	m.span = span
	return m, spanCtx
}

func (m *boardRequestMetrics) ObserveRender(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.renderDuration = duration
}

func (m *boardRequestMetrics) ObserveWrite(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.writeDuration = duration
}

func (m *boardRequestMetrics) SetCardsRendered(count int) {
	if count < 0 {
		count = 0
	}
	m.cardsRendered = count
}

func (m *boardRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log finalizes the request: annotates and ends the span and writes the
// observability.event log entry.
func (m *boardRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	totalMs := durationToMillis(time.Since(m.start))
	attrs := map[string]any{
		"http.route":            boardRoute,
		"http.status_code":      status,
		"kanban.board.cards":    m.cardsRendered,
		"kanban.board.total_ms": totalMs,
	}
	if m.renderDuration > 0 {
		attrs["kanban.board.render_ms"] = durationToMillis(m.renderDuration)
	}
	if m.writeDuration > 0 {
		attrs["kanban.board.write_ms"] = durationToMillis(m.writeDuration)
	}
	if m.errorStage != "" {
		attrs["kanban.board.error_stage"] = m.errorStage
	}
	if err != nil {
		attrs["error"] = err.Error()
	}

	severityText, severityNumber := severityInfo, severityInfoNumber
	if err != nil || status >= http.StatusInternalServerError {
		severityText, severityNumber = severityError, severityErrorNumber
	}

	if m.span != nil {
		spanAttrs := []attribute.KeyValue{
			attribute.String("http.route", boardRoute),
			attribute.Int64("http.status_code", int64(status)),
			attribute.Int("kanban.board.cards", m.cardsRendered),
			attribute.Float64("kanban.board.total_ms", totalMs),
		}
		if m.errorStage != "" {
			spanAttrs = append(spanAttrs, attribute.String("kanban.board.error_stage", m.errorStage))
		}
		m.span.SetAttributes(spanAttrs...)
		m.span.AddEvent("observability.event", trace.WithAttributes(
			attribute.String("event.name", boardEventName),
			attribute.String("event.domain", boardEventDomain),
		))
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
	}

	if m.logger != nil {
		fields := log.Fields{
			"event.name":      boardEventName,
			"event.domain":    boardEventDomain,
			"attributes":      attrs,
			"severity_text":   severityText,
			"severity_number": severityNumber,
		}
		if m.span != nil {
			if sc := m.span.SpanContext(); sc.HasTraceID() {
				fields["trace_id"] = sc.TraceID().String()
			}
		}
		m.logger.WithFields(fields).Info("observability.event")
	}

	if m.span != nil {
		m.span.End()
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
