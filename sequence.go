package quaver

import (
	"math"
	"regexp"
	"strconv"
)

// ReferenceNote is the note that plays at pitch ratio 1.
const ReferenceNote = 60

// a step is either a run of digits (a note) or any other single character
// (a rest)
var stepToken = regexp.MustCompile(`\d+|\D`)

// PitchRatio converts a note number to an equal-tempered frequency ratio.
func PitchRatio(note float64) float64 {
	return math.Pow(2, (note-ReferenceNote)/12)
}

// expandSequence turns note-grid compounds into events. Compounds share the
// cycle evenly and the steps of a compound share its slice evenly. Rests
// take a slot but produce no event.
func expandSequence(compounds []string) []Event {
	var events []Event
	n := float64(len(compounds))
	for ci, compound := range compounds {
		steps := stepToken.FindAllString(compound, -1)
		for si, step := range steps {
			note, err := strconv.Atoi(step)
			if err != nil {
				continue
			}
			t := float64(ci)/n + float64(si)/float64(len(steps))/n
			events = append(events, Event{Time: t, Pitch: PitchRatio(float64(note))})
		}
	}
	return events
}
