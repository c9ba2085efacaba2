package domain

// Order is a placed order as stored by the backend.
type Order struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	OwnerID string `json:"user_id"`
	Total   int64  `json:"total"`
}
