package domain

import (
	"fmt"
	"sort"
)

// SeatSet gives O(1) membership over seat identifiers. Seat collections are
// stored as lists but carry set semantics; all reconciliation goes through
// this type so duplicates can never creep in.
type SeatSet map[string]struct{}

func NewSeatSet(seats ...string) SeatSet {
	s := make(SeatSet, len(seats))
	for _, seat := range seats {
		s[seat] = struct{}{}
	}
	return s
}

// GenerateSeats returns the seat identifiers S1..S{total} assigned to a new
// inventory record.
func GenerateSeats(total int) []string {
	seats := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		seats = append(seats, fmt.Sprintf("S%d", i))
	}
	return seats
}

func (s SeatSet) Contains(seat string) bool {
	_, ok := s[seat]
	return ok
}

func (s SeatSet) ContainsAll(seats []string) bool {
	for _, seat := range seats {
		if !s.Contains(seat) {
			return false
		}
	}
	return true
}

func (s SeatSet) Add(seats ...string) {
	for _, seat := range seats {
		s[seat] = struct{}{}
	}
}

func (s SeatSet) Remove(seats ...string) {
	for _, seat := range seats {
		delete(s, seat)
	}
}

func (s SeatSet) Len() int { return len(s) }

// List returns the members in stable seat order (S1, S2, ..., S10, ...).
func (s SeatSet) List() []string {
	seats := make([]string, 0, len(s))
	for seat := range s {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool {
		if len(seats[i]) != len(seats[j]) {
			return len(seats[i]) < len(seats[j])
		}
		return seats[i] < seats[j]
	})
	return seats
}
