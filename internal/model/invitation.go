package model

import "time"

// InvitationID uniquely identifies a challenge invitation
type InvitationID string

// InvitationStatus represents the lifecycle state of an invitation.
// Pending is the only non-terminal state.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationExpired   InvitationStatus = "expired"
	InvitationCancelled InvitationStatus = "cancelled"
)

// Invitation is a challenge request from one lobby player to another
type Invitation struct {
	ID           InvitationID
	FromNickname string
	ToNickname   string
	Status       InvitationStatus
	CreatedAt    time.Time
	RespondedAt  *time.Time // nil until the invitation leaves pending
}

// IsPending reports whether the invitation is still awaiting a response
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

// Involves reports whether the nickname is the sender or the recipient
func (i *Invitation) Involves(nickname string) bool {
	return i.FromNickname == nickname || i.ToNickname == nickname
}

// IsBetween reports whether the invitation links the unordered pair {a, b}
func (i *Invitation) IsBetween(a, b string) bool {
	return (i.FromNickname == a && i.ToNickname == b) ||
		(i.FromNickname == b && i.ToNickname == a)
}
