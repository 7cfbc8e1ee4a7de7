package domain

// UserSuffix is appended to bare phone numbers to form the chat address the
// gateway understands.
const UserSuffix = "@c.us"

// BroadcastAddress is the pseudo-sender of status broadcasts; messages from
// it are never answered.
const BroadcastAddress = "status@broadcast"

// InboundMessage is one message delivered by the chat gateway.
type InboundMessage struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	Body   string `json:"body"`
	FromMe bool   `json:"fromMe"`
}
