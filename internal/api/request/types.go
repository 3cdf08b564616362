package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	SlotCount int      `json:"slot_count,omitempty"`
	Secret    []string `json:"secret,omitempty"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	Guess []string `json:"guess"`
}

// LoginRequest is the request body for joining the lobby
type LoginRequest struct {
	Nickname string `json:"nickname"`
}

// InviteRequest is the request body for challenging another player
type InviteRequest struct {
	ToNickname string `json:"to_nickname"`
}

// RespondInvitationRequest is the request body for answering an invitation
type RespondInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
	Accept       bool   `json:"accept"`
}

// CancelInvitationRequest is the request body for withdrawing an invitation
type CancelInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
}

// SetSecretRequest is the request body for setting a match secret
type SetSecretRequest struct {
	Opponent string   `json:"opponent"`
	Secret   []string `json:"secret"`
}
