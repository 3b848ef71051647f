package settings

// CredentialStatus reports credential presence without exposing it.
type CredentialStatus struct {
	Configured bool `json:"configured"`
	EnvManaged bool `json:"envManaged"`
}

// SetCredentialRequest carries a user-supplied API credential.
type SetCredentialRequest struct {
	Credential string `json:"credential"`
}

// MockMode is the "use mock data" toggle.
type MockMode struct {
	Enabled bool `json:"enabled"`
}
