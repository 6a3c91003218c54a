package models

// ===========================================================================
// Note (shift note / bulletin entry)
// A note lives in exactly one category. Three private categories are scoped
// to their owner; two shared categories (RADAR board and the informational
// feed) are visible to every authenticated user.
// ===========================================================================

// Category classifies a note.
type Category string

const (
	// CategoryEmails private: e-mails to follow up during the shift
	CategoryEmails Category = "Emails"

	// CategoryBalancaReport private: items to include in the weighbridge report
	CategoryBalancaReport Category = "Incluir no relatório de balança"

	// CategoryPendingTasks private: personal pending tasks (completable)
	CategoryPendingTasks Category = "Tarefas pendentes"

	// CategoryRadar shared bulletin board, visible to all departments
	CategoryRadar Category = "RADAR"

	// CategoryInfo shared informational feed, visible to all departments
	CategoryInfo Category = "INFORMACOES"
)

// PrivateCategories are the owner-scoped categories.
var PrivateCategories = []Category{
	CategoryEmails,
	CategoryBalancaReport,
	CategoryPendingTasks,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryEmails, CategoryBalancaReport, CategoryPendingTasks,
		CategoryRadar, CategoryInfo:
		return true
	}
	return false
}

// Shared reports whether notes in c are visible to every authenticated user
// regardless of owner.
func (c Category) Shared() bool {
	return c == CategoryRadar || c == CategoryInfo
}

// Note is a shift note or bulletin entry.
type Note struct {
	RecordBase

	// Title short heading
	Title string `gorm:"size:255;not null" json:"title"`

	// Content free-form body
	Content string `gorm:"type:text;not null" json:"content"`

	// Category visibility scope; see Category.Shared
	Category Category `gorm:"size:64;not null;index" json:"category"`

	// UserID owner id; meaningful only for private categories
	UserID string `gorm:"size:255;index" json:"userId"`

	// Completed done flag; meaningful only for task-like private categories
	Completed bool `gorm:"not null;default:false" json:"completed"`
}

// TableName keeps the original collection name.
func (Note) TableName() string {
	return "anotacoes"
}

// VisibleTo reports whether the note may be listed for the given viewer.
// Shared categories are visible to everyone; private categories only to
// their owner, plus any supervisor view. Soft-deleted notes are never
// visible.
func (n *Note) VisibleTo(viewerID string, supervisor bool) bool {
	if n.Deleted {
		return false
	}
	if n.Category.Shared() {
		return true
	}
	return supervisor || n.UserID == viewerID
}
