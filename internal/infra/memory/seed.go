package memory

import (
	"fmt"
	"strconv"
	"strings"

	"staybook/internal/domain/room"

	"github.com/google/uuid"
)

// ParseSeedRoom reads "propertyID/roomID/basePrice/capacity[/timeZone]".
func ParseSeedRoom(entry string) (*room.Room, error) {
	parts := strings.Split(strings.TrimSpace(entry), "/")
	if len(parts) < 4 {
		return nil, fmt.Errorf("seed room %q: want propertyID/roomID/basePrice/capacity[/timeZone]", entry)
	}
	propertyID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("seed room %q: property id: %w", entry, err)
	}
	roomID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("seed room %q: room id: %w", entry, err)
	}
	basePrice, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("seed room %q: base price: %w", entry, err)
	}
	capacity, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("seed room %q: capacity: %w", entry, err)
	}
	tz := ""
	if len(parts) > 4 {
		// IANA names contain slashes (Asia/Tokyo).
		tz = strings.Join(parts[4:], "/")
	}
	return room.NewRoom(roomID, propertyID, basePrice, capacity, tz)
}

// Seed adds every room in entries; empty entries are skipped.
func (s *Store) Seed(entries []string) (int, error) {
	n := 0
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		r, err := ParseSeedRoom(entry)
		if err != nil {
			return n, err
		}
		s.AddRoom(r)
		n++
	}
	return n, nil
}
