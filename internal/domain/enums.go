package domain

type Category string

const (
	CategoryDSA      Category = "dsa"
	CategoryCoding   Category = "coding"
	CategoryProject  Category = "project"
	CategoryAcademic Category = "academic"
	CategoryPersonal Category = "personal"
	CategoryBreak    Category = "break"
)

// TaskCategories is the canonical ordering used by analytics output.
var TaskCategories = []Category{
	CategoryDSA, CategoryCoding, CategoryProject, CategoryAcademic, CategoryPersonal,
}

// ValidCategories is the set of category strings accepted on routine blocks.
var ValidCategories = map[string]bool{
	"dsa": true, "coding": true, "project": true,
	"academic": true, "personal": true, "break": true,
}

func (c Category) IsBreak() bool { return c == CategoryBreak }

// Label returns the display label for a category.
func (c Category) Label() string {
	switch c {
	case CategoryDSA:
		return "DSA"
	case CategoryCoding:
		return "Coding"
	case CategoryProject:
		return "Project"
	case CategoryAcademic:
		return "Academic"
	case CategoryPersonal:
		return "Personal"
	case CategoryBreak:
		return "Break"
	}
	if c == "" {
		return "Uncategorized"
	}
	return string(c)
}

// rank orders known categories first, unknown ones after.
func (c Category) rank() int {
	for i, known := range TaskCategories {
		if c == known {
			return i
		}
	}
	return len(TaskCategories)
}

// CategoryLess orders categories canonically, falling back to name order.
func CategoryLess(a, b Category) bool {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		return ra < rb
	}
	return a < b
}

type TimerStatus string

const (
	TimerIdle     TimerStatus = "idle"
	TimerRunning  TimerStatus = "running"
	TimerPaused   TimerStatus = "paused"
	TimerWarning  TimerStatus = "warning"
	TimerOvertime TimerStatus = "overtime"
)
