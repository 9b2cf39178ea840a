package assist

// Context window limits. The primary backend accepts a wider window than the
// degraded-mode responder; the two paths build their windows independently.
const (
	PrimaryWindow  = 10
	FallbackWindow = 5
)

// LastUser returns the most recent user message. ok is false when the
// conversation holds no user turn at all, which callers treat as a
// zero-cost greeting path rather than an error.
func LastUser(messages []Message) (Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i], true
		}
	}
	return Message{}, false
}

// Window returns the last limit messages in original order. The returned
// slice aliases the input; callers must not mutate it.
func Window(messages []Message, limit int) []Message {
	if limit <= 0 || len(messages) == 0 {
		return nil
	}
	if len(messages) <= limit {
		return messages
	}
	return messages[len(messages)-limit:]
}
