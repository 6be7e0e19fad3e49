package demotokens

import "time"

// TokenRecord tracks generation usage for one signed demo token. Records
// are hard-deleted once Expiry passes; there is no soft delete here.
type TokenRecord struct {
	ID              int64
	Token           string
	IPAddress       string
	GenerationCount int
	Expiry          time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	// Limit is the generation ceiling per token within its validity window.
	Limit = 5
	// TTL is the validity window of a demo token.
	TTL = time.Hour
)
