package board

import (
	"strings"
	"testing"
	"time"

	"kanban-api/domain"
)

type sliceLister []domain.Task

func (l sliceLister) ListByStatus(status string) []domain.Task {
	out := []domain.Task{}
	for _, t := range l {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func TestRenderEmptyBoardShowsPlaceholders(t *testing.T) {
	tree := Render(sliceLister{}, domain.Columns, View{})

	for _, col := range domain.Columns {
		section := tree.Find("data-column-id", col.ID)
		if section == nil {
			t.Fatalf("missing column %s", col.ID)
		}
		count := section.Find("data-column", col.ID)
		if count == nil || count.Text != "0" {
			t.Fatalf("column %s: expected count 0, got %#v", col.ID, count)
		}
		html := section.HTML()
		if !strings.Contains(html, "empty-state") {
			t.Fatalf("column %s: missing empty state", col.ID)
		}
		msg := emptyStates[col.ID]
		if !strings.Contains(html, msg.text) || !strings.Contains(html, msg.hint) {
			t.Fatalf("column %s: empty state triple not rendered", col.ID)
		}
	}
}

func TestRenderCardsInStoreOrderWithCounts(t *testing.T) {
	tasks := sliceLister{
		{ID: "a", Title: "first", Status: domain.StatusTodo, CreatedAt: 1},
		{ID: "b", Title: "second", Status: domain.StatusTodo, CreatedAt: 2},
		{ID: "c", Title: "elsewhere", Status: domain.StatusDone, CreatedAt: 3},
	}
	tree := Render(tasks, domain.Columns, View{})

	todo := tree.Find("data-column-id", domain.StatusTodo)
	cards := todo.FindAll("data-task-id")
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards in todo, got %d", len(cards))
	}
	if cards[0].Attr("data-task-id") != "a" || cards[1].Attr("data-task-id") != "b" {
		t.Fatalf("cards out of order: %s, %s", cards[0].Attr("data-task-id"), cards[1].Attr("data-task-id"))
	}
	if count := todo.Find("data-column", domain.StatusTodo); count.Text != "2" {
		t.Fatalf("expected count 2, got %q", count.Text)
	}
	if count := tree.Find("data-column", domain.StatusDone); count.Text != "1" {
		t.Fatalf("expected count 1, got %q", count.Text)
	}
	if strings.Contains(todo.HTML(), "empty-state") {
		t.Fatal("populated column must not render the empty state")
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	tasks := sliceLister{{
		ID:          "x",
		Title:       `<script>alert("t")</script>`,
		Description: `<img src=x onerror="p()">`,
		Status:      domain.StatusTodo,
	}}
	html := Render(tasks, domain.Columns, View{}).HTML()

	if strings.Contains(html, "<script>") || strings.Contains(html, "<img") {
		t.Fatalf("raw user markup leaked into output:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped title in output:\n%s", html)
	}
}

func TestRenderEscapesUserTextInEditMode(t *testing.T) {
	tasks := sliceLister{{
		ID:          "x",
		Title:       `"><script>q()</script>`,
		Description: "<b>d</b>",
		Status:      domain.StatusTodo,
	}}
	html := Render(tasks, domain.Columns, View{EditingID: "x"}).HTML()

	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>") {
		t.Fatalf("raw user markup leaked into edit form:\n%s", html)
	}
}

func TestRenderOmitsEmptyDescription(t *testing.T) {
	tasks := sliceLister{{ID: "x", Title: "t", Status: domain.StatusTodo}}
	html := Render(tasks, domain.Columns, View{}).HTML()

	if strings.Contains(html, "task-description") {
		t.Fatalf("empty description must not render:\n%s", html)
	}
}

func TestRenderFormatsCreationTimestamp(t *testing.T) {
	created := time.Date(2024, time.December, 5, 15, 4, 0, 0, time.Local)
	tasks := sliceLister{{ID: "x", Title: "t", Status: domain.StatusTodo, CreatedAt: created.UnixMilli()}}
	html := Render(tasks, domain.Columns, View{}).HTML()

	if !strings.Contains(html, "Created: Dec 5, 03:04 PM") {
		t.Fatalf("expected short-month timestamp in output:\n%s", html)
	}
}

func TestRenderDragIndicators(t *testing.T) {
	tasks := sliceLister{{ID: "x", Title: "t", Status: domain.StatusTodo}}
	tree := Render(tasks, domain.Columns, View{DraggingID: "x", DropTarget: domain.StatusDone})

	card := tree.Find("data-task-id", "x")
	if !strings.Contains(card.Attr("class"), "dragging") {
		t.Fatalf("dragged card missing indicator: %q", card.Attr("class"))
	}

	var marked []string
	for _, col := range domain.Columns {
		container := tree.Find("data-status", col.ID)
		if strings.Contains(container.Attr("class"), "drag-over") {
			marked = append(marked, col.ID)
		}
	}
	if len(marked) != 1 || marked[0] != domain.StatusDone {
		t.Fatalf("expected exactly the done column marked, got %v", marked)
	}
}

func TestRenderIndicatorsAbsentWhenIdle(t *testing.T) {
	tasks := sliceLister{{ID: "x", Title: "t", Status: domain.StatusTodo}}
	html := Render(tasks, domain.Columns, View{}).HTML()

	if strings.Contains(html, "dragging") || strings.Contains(html, "drag-over") {
		t.Fatalf("idle render must carry no drag indicators:\n%s", html)
	}
}

func TestRenderEditingCard(t *testing.T) {
	tasks := sliceLister{{ID: "x", Title: "my title", Description: "my notes", Status: domain.StatusTodo}}
	tree := Render(tasks, domain.Columns, View{EditingID: "x"})

	card := tree.Find("data-task-id", "x")
	if card.Attr("draggable") != "false" {
		t.Fatalf("editing card must not be draggable, got %q", card.Attr("draggable"))
	}
	html := card.HTML()
	if !strings.Contains(html, `value="my title"`) {
		t.Fatalf("title input not pre-filled:\n%s", html)
	}
	if !strings.Contains(html, ">my notes</textarea>") {
		t.Fatalf("description textarea not pre-filled:\n%s", html)
	}
	if !strings.Contains(html, `data-action="save-edit"`) || !strings.Contains(html, `data-action="cancel-edit"`) {
		t.Fatalf("edit affordances missing:\n%s", html)
	}
	if strings.Contains(html, "edit-error") {
		t.Fatalf("no error expected:\n%s", html)
	}

	withErr := Render(tasks, domain.Columns, View{EditingID: "x", EditError: true})
	if !strings.Contains(withErr.HTML(), "edit-error") {
		t.Fatal("expected surfaced edit error")
	}
}

func TestRenderDeleteModal(t *testing.T) {
	tasks := sliceLister{{ID: "x", Title: "t", Status: domain.StatusTodo}}

	idle := Render(tasks, domain.Columns, View{})
	if idle.Find("data-pending-delete", "x") != nil {
		t.Fatal("modal rendered without a pending delete")
	}

	pending := Render(tasks, domain.Columns, View{PendingDeleteID: "x"})
	modal := pending.Find("data-pending-delete", "x")
	if modal == nil {
		t.Fatal("expected delete confirmation modal")
	}
	html := modal.HTML()
	if !strings.Contains(html, `data-action="confirm-delete"`) || !strings.Contains(html, `data-action="cancel-delete"`) {
		t.Fatalf("modal affordances missing:\n%s", html)
	}
}

func TestElementTreeBasics(t *testing.T) {
	root := NewElement("div").SetAttr("id", "a")
	child := NewElement("span").SetAttr("id", "b").SetText(`x < y & "z"`)
	root.Append(child)

	if root.Find("id", "b") != child {
		t.Fatal("Find failed")
	}
	root.SetAttr("id", "c")
	if root.Attr("id") != "c" {
		t.Fatalf("SetAttr replace failed: %q", root.Attr("id"))
	}

	html := root.HTML()
	want := `<div id="c"><span id="b">x &lt; y &amp; &#34;z&#34;</span></div>`
	if html != want {
		t.Fatalf("unexpected serialization:\nwant %s\ngot  %s", want, html)
	}
}

func TestVoidElementSerialization(t *testing.T) {
	input := NewElement("input").SetAttr("type", "text").SetAttr("value", `a"b`)
	if got := input.HTML(); got != `<input type="text" value="a&#34;b">` {
		t.Fatalf("unexpected void element output: %s", got)
	}
}
