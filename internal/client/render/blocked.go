package render

// MsgNoBlocked is shown when nobody is blocked.
const MsgNoBlocked = "Aucun utilisateur bloqué."

// BlockedList is the rendered list of blocked usernames.
type BlockedList struct {
	Users []string
	// Message is set when Users is empty.
	Message string
}

// Blocked renders users exactly as given.
func Blocked(users []string) BlockedList {
	if len(users) == 0 {
		return BlockedList{Message: MsgNoBlocked}
	}
	out := make([]string, len(users))
	copy(out, users)
	return BlockedList{Users: out}
}
