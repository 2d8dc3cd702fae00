package ledger

// Stats summarizes purchase history for the profile view.
type Stats struct {
	Orders     int   `json:"orders"`
	Items      int   `json:"items"`
	TotalSpent int64 `json:"total_spent"`
	Saved      int64 `json:"saved"`
}

func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Stats
	for _, p := range l.acct.PurchaseHistory {
		s.Orders++
		s.Items += len(p.Items)
		s.TotalSpent += p.Total
		s.Saved += p.Discount
	}
	return s
}
