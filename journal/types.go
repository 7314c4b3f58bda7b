package journal

// Op is the kind of change recorded in the journal.
type Op string

const (
	// OpSet records a value assigned at a route (including a full document
	// replace at the empty route).
	OpSet Op = "set"

	// OpDelete records a route removed from a document.
	OpDelete Op = "delete"
)

// Change is one journal row.
type Change struct {
	// ID uniquely identifies the change (a UUID assigned by the writer).
	ID string

	// Path is the config file the change was applied to.
	Path string

	// Route is the dotted textual form of the changed route.
	// Empty means the document root.
	Route string

	// Op is the operation kind.
	Op Op

	// Value is the canonical JSON of the assigned value. Empty for deletes.
	Value string

	// DocHash is the content hash of the full document after the change.
	DocHash string

	// RecordedAt is the UTC insertion timestamp, filled by the database.
	RecordedAt string
}
