package domain

// PriceQuote is a single provider's unit rate for a service. The meaning of
// Price depends on Unit (per-hour, per-GB-month, per-million-invocations...).
type PriceQuote struct {
	Price   float64           `json:"price"`
	Unit    string            `json:"unit,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// PricingEnvelope is the uniform response wrapper returned by every
// comparison endpoint. When Error is set, all three provider quotes are nil.
type PricingEnvelope struct {
	AWS   *PriceQuote `json:"aws"`
	Azure *PriceQuote `json:"azure"`
	GCP   *PriceQuote `json:"gcp"`
	Error string      `json:"error,omitempty"`
}

// ErrorEnvelope builds an envelope carrying only an error message.
func ErrorEnvelope(msg string) *PricingEnvelope {
	return &PricingEnvelope{Error: msg}
}

// InstanceDetail is the per-instance-type metadata subset shown in the UI.
type InstanceDetail struct {
	VCPUs     int    `json:"vcpus"`
	MemoryMiB int64  `json:"memoryMiB"`
	Network   string `json:"network"`
}

// InstanceCatalogEntry holds the instance-type listing for one region.
// Items is sorted lexicographically.
type InstanceCatalogEntry struct {
	Items   []string                  `json:"items"`
	Details map[string]InstanceDetail `json:"details"`
}

// ChatMessage is a single turn of a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// ChatRequest is the request body of the chat endpoint.
type ChatRequest struct {
	Prompt       string        `json:"prompt"`
	Model        string        `json:"model,omitempty"`
	Conversation []ChatMessage `json:"conversation,omitempty"`
}

// ChatResponse carries the assistant completion back to the client.
type ChatResponse struct {
	Completion string `json:"completion"`
}
