package models

// Stats is the server-computed aggregate shown on the dashboard. It is
// re-fetched after every mutation and never derived locally.
type Stats struct {
	TotalRegistered   int `json:"total_registered"`
	Confirmed         int `json:"confirmed"`
	Waitlisted        int `json:"waitlisted"`
	Cancelled         int `json:"cancelled"`
	Paid              int `json:"paid"`
	Unpaid            int `json:"unpaid"`
	Refunded          int `json:"refunded"`
	CheckedIn         int `json:"checked_in"`
	Capacity          int `json:"capacity"`
	CapacityRemaining int `json:"capacity_remaining"`
	RevenueCents      int `json:"revenue_cents"`
}
