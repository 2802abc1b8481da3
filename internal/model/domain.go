package model

// DomainID identifies one telemetry domain and the view that presents it.
type DomainID string

const (
	Dashboard DomainID = "dashboard"
	Identity  DomainID = "identity"
	Process   DomainID = "process"
	Files     DomainID = "files"
	Network   DomainID = "network"
	Registry  DomainID = "registry"
	Media     DomainID = "media"
	Email     DomainID = "email"
	Security  DomainID = "security"
	Clipboard DomainID = "clipboard"
)

// DomainIDs is the navigation order of all views.
var DomainIDs = []DomainID{
	Dashboard, Identity, Process, Files, Network,
	Registry, Media, Email, Security, Clipboard,
}

// Valid reports whether id names a known domain.
func (id DomainID) Valid() bool {
	for _, d := range DomainIDs {
		if d == id {
			return true
		}
	}
	return false
}

// ParseDomainID converts s to a DomainID, returning false for unknown ids.
func ParseDomainID(s string) (DomainID, bool) {
	id := DomainID(s)
	return id, id.Valid()
}

// Common column keys shared by most domains.
const (
	KeyTimestamp = "timestamp"
	KeyUser      = "user"
	KeyRisk      = "riskScore"
)
