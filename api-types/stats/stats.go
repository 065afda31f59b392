package stats

// Kind names a statistics document served under /stats/.
type Kind string

const (
	Dashboard   Kind = "dashboard"
	System      Kind = "system"
	Performance Kind = "performance"
)

func (k Kind) Valid() bool {
	switch k {
	case Dashboard, System, Performance:
		return true
	default:
		return false
	}
}

// Document is a statistics document. Its shape is owned by the server.
type Document map[string]any

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)
