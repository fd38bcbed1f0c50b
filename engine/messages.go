// Package engine speaks the wire protocol of the external strategy
// engine: JSON objects over one persistent TCP stream. The engine itself
// is a black box; this package only carries selections out and executions
// in.
package engine

// Selection kinds understood by the engine.
const (
	SelectCompany  = "company"
	SelectStrategy = "strategy"
)

// Selection is an outbound control message. Fire-and-forget: the engine
// never acknowledges.
type Selection struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Execution is an inbound trade notification. The engine does not echo
// the company back; the receiver resolves the company from its own
// selection state at the moment of receipt.
type Execution struct {
	Balance   float64 `json:"balance"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	Amount    int     `json:"amount"`
	Timestamp string  `json:"timestamp"`
}
