package dto

// TranscriptTurnMessage is the payload published on the in-process bus
// for every chat turn, then forwarded to the durable event stream.
type TranscriptTurnMessage struct {
	SessionId string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Intent    string `json:"intent,omitempty"`
	At        string `json:"at"`
}
