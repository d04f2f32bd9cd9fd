package domain

// Column is a named bucket partitioning tasks by workflow stage.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Status values for the fixed board columns.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// DefaultStatus is assigned to every newly created task.
const DefaultStatus = StatusTodo

// Columns lists the board columns in display order. The set doubles as the
// closed set of valid task statuses.
var Columns = []Column{
	{ID: StatusTodo, Title: "To Do"},
	{ID: StatusInProgress, Title: "In Progress"},
	{ID: StatusDone, Title: "Done"},
}

// ValidStatus reports whether s names one of the declared columns.
func ValidStatus(s string) bool {
	for _, c := range Columns {
		if c.ID == s {
			return true
		}
	}
	return false
}
