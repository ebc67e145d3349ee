package models

// ImportReport summarises the outcome of importing one document.
type ImportReport struct {
	// Exporter is the relying party the document came from.
	Exporter string
	Version  Version

	Accounts    int
	Items       int
	Credentials int

	// UnknownCredentials counts credentials stored verbatim because their
	// type is not known to this package.
	UnknownCredentials int

	// Skipped lists items that failed to decode and were not imported.
	Skipped []*ItemError

	// DanglingLinks counts collection entries and item references whose
	// target is not part of the document.
	DanglingLinks int
}

// Add merges other into r.
func (r *ImportReport) Add(other ImportReport) {
	r.Accounts += other.Accounts
	r.Items += other.Items
	r.Credentials += other.Credentials
	r.UnknownCredentials += other.UnknownCredentials
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.DanglingLinks += other.DanglingLinks
}
