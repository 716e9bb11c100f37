package collection

import "fmt"

// ErrorKind discriminates collection failures, both at construction and
// at generation time.
type ErrorKind int

const (
	// TableNotFound reports a generation request for a table id the
	// collection does not contain.
	TableNotFound ErrorKind = iota
	// EmptyTable reports a declared table with zero rules, found while
	// compiling the program.
	EmptyTable
	// ParseError wraps a source-to-tree failure.
	ParseError
	// GenerationError reports an internal invariant violation during
	// sampling or expansion.
	GenerationError
	// InvalidTableReference reports a rule referencing a table that does
	// not exist in the collection.
	InvalidTableReference
	// MissingDependency reports a reference into an external collection,
	// which this engine never resolves.
	MissingDependency
	// ExternalTableNotFound is reserved for a future resolver that can
	// load external collections but cannot find the named table.
	ExternalTableNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case TableNotFound:
		return "table not found"
	case EmptyTable:
		return "empty table"
	case ParseError:
		return "parse error"
	case GenerationError:
		return "generation error"
	case InvalidTableReference:
		return "invalid table reference"
	case MissingDependency:
		return "missing dependency"
	case ExternalTableNotFound:
		return "external table not found"
	default:
		return "unknown"
	}
}

// Error is the collection's failure type. Only the fields relevant to
// the kind are set.
type Error struct {
	Kind             ErrorKind
	TableID          string
	ReferencingTable string
	Publisher        string
	Collection       string
	Detail           string
	Err              error
}

func (e *Error) Error() string {
	switch e.Kind {
	case TableNotFound:
		return fmt.Sprintf("Table '%s' not found", e.TableID)
	case EmptyTable:
		return fmt.Sprintf("Table '%s' has no rules", e.TableID)
	case ParseError:
		return fmt.Sprintf("Parse error: %s", e.Err)
	case GenerationError:
		return fmt.Sprintf("Generation error: %s", e.Detail)
	case InvalidTableReference:
		return fmt.Sprintf("Invalid table reference: Table '%s' referenced in table '%s' does not exist",
			e.TableID, e.ReferencingTable)
	case MissingDependency:
		return fmt.Sprintf("Missing dependency: '@%s/%s#%s' referenced in table '%s' is not available",
			e.Publisher, e.Collection, e.TableID, e.ReferencingTable)
	case ExternalTableNotFound:
		return fmt.Sprintf("External table '%s/%s#%s' not found", e.Publisher, e.Collection, e.TableID)
	default:
		return "unknown collection error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func tableNotFoundError(tableID string) *Error {
	return &Error{Kind: TableNotFound, TableID: tableID}
}

func emptyTableError(tableID string) *Error {
	return &Error{Kind: EmptyTable, TableID: tableID}
}

func parseError(err error) *Error {
	return &Error{Kind: ParseError, Err: err}
}

func generationError(detail string) *Error {
	return &Error{Kind: GenerationError, Detail: detail}
}

func invalidTableReferenceError(tableID, referencingTable string) *Error {
	return &Error{Kind: InvalidTableReference, TableID: tableID, ReferencingTable: referencingTable}
}

func missingDependencyError(publisher, collection, tableID, referencingTable string) *Error {
	return &Error{
		Kind:             MissingDependency,
		Publisher:        publisher,
		Collection:       collection,
		TableID:          tableID,
		ReferencingTable: referencingTable,
	}
}

func externalTableNotFoundError(publisher, collection, tableID string) *Error {
	return &Error{
		Kind:       ExternalTableNotFound,
		Publisher:  publisher,
		Collection: collection,
		TableID:    tableID,
	}
}
