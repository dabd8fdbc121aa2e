// Package sequencer orders a command batch for the engine. The ordering
// contract is explicit: commands are sorted by embedded timestamp, and
// commands with equal timestamps keep their original submission order. The
// pipelines trust this contract and never re-sort.
package sequencer

import (
	"sort"

	"github.com/PooyaTarashi/railway-reservation/models"
)

// Order returns a new slice with the commands in processing order. Each
// command's Seq field is stamped with its original submission index.
func Order(commands []models.Command) []models.Command {
	ordered := make([]models.Command, len(commands))
	copy(ordered, commands)
	for i := range ordered {
		ordered[i].Seq = i
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].At.Equal(ordered[j].At.Time) {
			return ordered[i].At.Before(ordered[j].At.Time)
		}
		return ordered[i].Seq < ordered[j].Seq
	})
	return ordered
}
