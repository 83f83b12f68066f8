package domain

// BackupDocument is the export file format: the four persisted
// collections plus the export timestamp, pretty-printed JSON. Exports
// always carry all four keys; on import any subset may be present
// (the store decodes into pointer fields to tell absence apart from
// an empty collection).
type BackupDocument struct {
	Products     []Product     `json:"products"`
	Customers    []Customer    `json:"customers"`
	Transactions []Transaction `json:"transactions"`
	Settings     Settings      `json:"settings"`
	ExportDate   string        `json:"exportDate"`
}
