package model

// Candidate is one company discovered by a search pass. It has no persisted
// identity of its own; its normalized domain is the dedup key.
type Candidate struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Market  string `json:"market"`
	Keyword string `json:"keyword"`
}

// DecisionMaker is a validated buying contact at a company.
type DecisionMaker struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Title      string `json:"title"`
	ProfileURL string `json:"profile_url,omitempty"`
	Email      string `json:"email,omitempty"`
}

// FullName returns the decision maker's display name.
func (d DecisionMaker) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// ICP is one Ideal Customer Profile definition driving keyword generation.
type ICP struct {
	Industry    string `yaml:"industry" json:"industry"`
	Geography   string `yaml:"geography" json:"geography"`
	Description string `yaml:"description" json:"description"`
}
