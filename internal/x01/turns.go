package x01

import "github.com/google/uuid"

// nextPlayer returns the seat-order successor of the last thrower, wrapping
// around. Every player throws every round until the leg closes.
func nextPlayer(players []Seat, last uuid.UUID) uuid.UUID {
	for i, p := range players {
		if p.PlayerID == last {
			return players[(i+1)%len(players)].PlayerID
		}
	}
	return players[0].PlayerID
}

// openerFor picks who opens a leg. matchLeg is the 0-based index of the leg
// counted across the whole match, so under OpenerRotate the opener simply
// rotates leg to leg regardless of who won.
func openerFor(policy OpenerPolicy, matchLeg int, players []Seat) uuid.UUID {
	if policy == OpenerFixed {
		return players[0].PlayerID
	}
	return players[matchLeg%len(players)].PlayerID
}
