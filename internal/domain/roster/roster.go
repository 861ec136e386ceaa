// Package roster derives the player->events index from sorted events.
package roster

import (
	"sort"

	"github.com/bottoscon/consched/internal/domain/model"
)

// BuildIndex maps each player name to the events they appear in.
// Events must already be in chronological order; one pass over them
// makes every player's list follow that same order. A player occupying
// two slots in one event appears twice for that event, mirroring the
// sheet row. Names are case-sensitive and compared exactly as cleaned.
func BuildIndex(events []*model.Event) map[string][]*model.Event {
	index := make(map[string][]*model.Event)
	for _, ev := range events {
		for _, player := range ev.Players {
			index[player] = append(index[player], ev)
		}
	}
	return index
}

// Players returns the indexed player names in lexical order.
func Players(index map[string][]*model.Event) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
