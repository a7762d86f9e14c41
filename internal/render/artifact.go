// Package render draws promotional artifacts from formatted lines: raster
// images, editable slide decks, and the fixed four-card news sequence. All
// geometry derives proportionally from the profile so every profile reuses
// the same layout logic. A failing decoration substep (logo, glyph) is
// skipped, never fatal: a render call returns a partially decorated artifact
// rather than propagating the failure.
package render

import (
	"github.com/elephantfactory/promogen/constants"
)

// Kind tells the bundle writer which folder an artifact belongs to.
type Kind string

const (
	KindImage Kind = "image"
	KindDeck  Kind = "deck"
	KindCard  Kind = "card"
)

// Artifact is one rendered output unit.
type Artifact struct {
	Name    string // file name inside the bundle
	Kind    Kind
	Lang    constants.Language
	Profile constants.Profile
	Data    []byte
}
