package notify

// Recipients is the fixed set of operator chat identities that receive lead
// notifications and may query the lead store. It is built once at startup and
// never mutated afterwards.
type Recipients []int64

// NewRecipients builds a deduplicated recipient set, dropping zero identities
// (zero means "recipient disabled" in configuration).
func NewRecipients(ids ...int64) Recipients {
	seen := make(map[int64]struct{}, len(ids))
	out := make(Recipients, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Contains reports whether the identity belongs to the recipient set.
func (r Recipients) Contains(id int64) bool {
	for _, v := range r {
		if v == id {
			return true
		}
	}
	return false
}
