package domain

// Provider is a clinician whose calendar holds base slots.
// Providers are owned by the roster; the engine only reads them.
type Provider struct {
	ID        string
	Name      string
	Specialty string
	Location  string // primary location
}
