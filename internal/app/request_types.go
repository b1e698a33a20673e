package app

// ImportFile is one uploaded file in an import batch. Data is the full file
// content; the name's extension selects the decoder (.xlsx, .csv, ...).
type ImportFile struct {
	Name string
	Data []byte
}
