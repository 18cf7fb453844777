package models

// Application is one launchable entry discovered from a desktop file
type Application struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`     // Absolute path, or empty when nothing resolved
	Exec     string `json:"exec"`     // Launch command without field codes
	Terminal bool   `json:"terminal"` // Runs inside a terminal emulator
	Source   string `json:"-"`        // Desktop file the entry was parsed from
}

// Catalog is the snapshot printed for the widget
type Catalog struct {
	Apps      []Application `json:"apps"`
	Favorites []Application `json:"favorites"`
}
