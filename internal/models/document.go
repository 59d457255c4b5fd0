package models

// Document is the whole-store layout used by the JSON backend, exports and
// legacy imports. Settings are keyed by user id.
type Document struct {
	Users    map[string]User     `json:"users"`
	Invoices map[string]Invoice  `json:"invoices"`
	Clients  map[string]Client   `json:"clients"`
	Settings map[string]Settings `json:"settings"`
}

func NewDocument() *Document {
	return &Document{
		Users:    map[string]User{},
		Invoices: map[string]Invoice{},
		Clients:  map[string]Client{},
		Settings: map[string]Settings{},
	}
}

// Normalize replaces missing collections with empty ones.
func (document *Document) Normalize() {
	if document.Users == nil {
		document.Users = map[string]User{}
	}
	if document.Invoices == nil {
		document.Invoices = map[string]Invoice{}
	}
	if document.Clients == nil {
		document.Clients = map[string]Client{}
	}
	if document.Settings == nil {
		document.Settings = map[string]Settings{}
	}
}
