package models

import "time"

// Idea represents one generated startup concept. A list of ideas is always
// replaced wholesale; individual ideas are never mutated after creation.
type Idea struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Tagline   string   `json:"tagline"`
	Agony     string   `json:"agony"`
	Solution  string   `json:"solution"`
	Moat      string   `json:"moat"`
	Revenue   string   `json:"revenue"`
	WhyNow    string   `json:"whynow"`
	Valuation string   `json:"valuation"`
	Blueprint []string `json:"blueprint"`
}

// IdeaBatch is one archived generation result: the parameters the batch was
// generated from plus the ideas themselves.
type IdeaBatch struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Catalyst  string    `json:"catalyst"`
	Risk      string    `json:"risk"`
	Fallback  bool      `json:"fallback"`
	Ideas     []Idea    `json:"ideas"`
	CreatedAt time.Time `json:"created_at"`
}

// NewIdeaBatch creates a batch ready for archiving.
func NewIdeaBatch(domain, catalyst, risk string, fallback bool, ideas []Idea) *IdeaBatch {
	return &IdeaBatch{
		Domain:    domain,
		Catalyst:  catalyst,
		Risk:      risk,
		Fallback:  fallback,
		Ideas:     ideas,
		CreatedAt: time.Now(),
	}
}
