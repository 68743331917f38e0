package config

import (
	"fmt"
	"strings"
)

// Member is one physical member of a ring. Its string form is the ID, which
// is what hash keys are derived from, so Member values can be used directly
// as hashring node identifiers.
type Member struct {
	ID   string
	Addr string
}

func (m Member) String() string { return m.ID }

// ParseMembers parses a comma-separated list of members in the format:
// "id1=addr1,id2=addr2,id3=addr3"
//
// Member IDs must be unique: the ring is keyed by ID, so a repeated ID
// would silently collapse into a single member instead of routing to two
// addresses.
func ParseMembers(membersStr string) ([]Member, error) {
	if membersStr == "" {
		return []Member{}, nil
	}

	parts := strings.Split(membersStr, ",")
	members := make([]Member, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid member format: %s (expected id=addr)", part)
		}

		id := strings.TrimSpace(kv[0])
		addr := strings.TrimSpace(kv[1])

		if id == "" || addr == "" {
			return nil, fmt.Errorf("member ID and address cannot be empty: %s", part)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate member ID: %s", id)
		}
		seen[id] = true

		members = append(members, Member{
			ID:   id,
			Addr: addr,
		})
	}

	return members, nil
}
