package ui

// Layer is the part of the tree that currently receives keys.
type Layer int

const (
	LayerRoot Layer = iota
	LayerModal
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerRoot:
		return "Root"
	case LayerModal:
		return "Modal"
	case LayerOverlay:
		return "Overlay"
	default:
		return "Unknown"
	}
}
