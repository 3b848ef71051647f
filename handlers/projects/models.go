package projects

// CreateProjectRequest optionally seeds a new project from a
// recommendation. Empty fields fall back to placeholder defaults.
type CreateProjectRequest struct {
	GrantTitle string `json:"grantTitle"`
	Funder     string `json:"funder"`
}

// TransitionRequest names the target lifecycle status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// CritiqueResponse carries the advisory feedback text (markdown).
type CritiqueResponse struct {
	Critique string `json:"critique"`
}
