package stores

// SanitizeTurns drops stored turns that carry neither user text nor a reply.
// Order is kept. Turns using the reserved "system" user text are kept; they
// are only hidden from snapshots while a reply streams.
func SanitizeTurns(records []TurnRecord) []TurnRecord {
	out := make([]TurnRecord, 0, len(records))
	for _, r := range records {
		if r.UserText == "" && r.ReplyText == "" && r.AudioPath == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
