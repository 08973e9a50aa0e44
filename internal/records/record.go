package records

// UnknownID is the identification code siegfried reports for content it could
// not identify.
const UnknownID = "UNKNOWN"

// EmptySize is the filesize value that marks a zero-byte file.
const EmptySize = "0"

// Record is one characterized file as reported by the scanner.
type Record struct {
	Filename  string
	Filesize  string
	Modified  string
	Errors    string
	Hash      string
	Namespace string
	ID        string
	Format    string
	Version   string
	MIME      string
	Basis     string
	Warning   string
}

// Fields returns the record values in column order.
func (r Record) Fields() []string {
	return []string{
		r.Filename, r.Filesize, r.Modified, r.Errors, r.Hash, r.Namespace,
		r.ID, r.Format, r.Version, r.MIME, r.Basis, r.Warning,
	}
}

// IsEmpty reports whether the record describes a zero-byte file.
func (r Record) IsEmpty() bool {
	return r.Filesize == EmptySize
}

// IsUnidentified reports whether the scanner could not identify the content.
func (r Record) IsUnidentified() bool {
	return r.ID == UnknownID
}
