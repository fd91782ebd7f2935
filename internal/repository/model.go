package repository

// Scores maps a group ID to each member's cumulative score in that group.
// Keys are string-rendered chat identifiers.
type Scores map[string]map[string]int

func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for group, users := range s {
		cp := make(map[string]int, len(users))
		for user, score := range users {
			cp[user] = score
		}
		out[group] = cp
	}
	return out
}

// Add folds deltas into the group, creating entries as needed.
func (s Scores) Add(groupID string, deltas map[string]int) {
	users, ok := s[groupID]
	if !ok {
		users = make(map[string]int, len(deltas))
		s[groupID] = users
	}
	for user, delta := range deltas {
		users[user] += delta
	}
}
