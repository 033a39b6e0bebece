package database

// TipRecord represents one confirmed transfer as it is persisted in the
// tip lists. Records are never mutated once written.
type TipRecord struct {
	Handle  string `json:"handle"`            // Recipient handle at tip time, may be a placeholder.
	Address string `json:"address"`           // Recipient chain address.
	Amount  string `json:"amount"`            // Decimal amount in token units.
	Sig     string `json:"sig"`               // Transaction signature, unique per record.
	Date    string `json:"date"`              // Display formatted time of the tip.
	Message string `json:"message,omitempty"` // Optional memo sent with the tip.
}

// prepend places the record at the front of the list and truncates the
// result to limit entries, evicting the oldest.
func prepend(list []TipRecord, rec TipRecord, limit int) []TipRecord {
	out := make([]TipRecord, 0, min(len(list)+1, limit))
	out = append(out, rec)

	for _, r := range list {
		if len(out) >= limit {
			break
		}
		out = append(out, r)
	}

	return out
}
