package assist

import "encoding/json"

// Message roles. The set is closed; anything else is ignored by providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CallerContext carries tenant metadata the dashboard attaches to a chat
// request. Tier and Vertical are read by the gateway itself (prompt tuning);
// Extra is forwarded to the orchestration backend untouched.
type CallerContext struct {
	Tier     string         `json:"pack,omitempty"`
	Vertical string         `json:"metier,omitempty"`
	Extra    map[string]any `json:"-"`
}

// UnmarshalJSON keeps the known fields typed while collecting every other
// key into Extra, so unknown caller metadata survives the round trip to the
// backend.
func (c *CallerContext) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["pack"].(string); ok {
		c.Tier = v
	}
	if v, ok := raw["metier"].(string); ok {
		c.Vertical = v
	}
	delete(raw, "pack")
	delete(raw, "metier")
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Messages   []Message     `json:"messages"`
	Context    CallerContext `json:"context"`
	Images     []string      `json:"images,omitempty"`
	Files      []string      `json:"files,omitempty"`
	ForcedLang string        `json:"forcedLang,omitempty"`
}

// ChatResponse is the normalized answer shape. Message is always non-empty;
// every other field carries a safe default so callers never null-check.
type ChatResponse struct {
	Message   string `json:"message"`
	PDF       string `json:"pdf,omitempty"`
	Lang      string `json:"lang"`
	LangName  string `json:"langName"`
	Direction string `json:"direction"`
	HasAudio  bool   `json:"hasAudio"`
	Agent     string `json:"agent,omitempty"`
	Tier      string `json:"pack,omitempty"`
	Vertical  string `json:"metier,omitempty"`
}

// Text directions.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)
