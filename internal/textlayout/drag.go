package textlayout

import (
	"math"
	"time"

	"github.com/youruser/cardgen/internal/card"
)

const (
	// SnapThreshold is how close, in logical units, the container must come
	// to the centre on an axis before it locks there.
	SnapThreshold = 10.0
	// FlashDuration is how long both guides stay visible after Recenter.
	FlashDuration = 800 * time.Millisecond
)

// Guides reports which centre guides are visible.
type Guides struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// Dragger tracks a drag of the text container. It has two states, idle and
// dragging; positions are derived from the cumulative pointer delta since
// Start, so missed move events never accumulate error.
type Dragger struct {
	dragging     bool
	startPointer card.Point
	startPos     card.Point
	box          Size
	canvas       Size
	guides       Guides
	flashUntil   time.Time
}

func NewDragger() *Dragger { return &Dragger{} }

func (d *Dragger) Dragging() bool { return d.dragging }

// Start begins a drag. When current is nil the container is first placed at
// the centre, and that position is returned so callers can pin it.
func (d *Dragger) Start(pointer card.Point, current *card.Point, box, canvas Size) card.Point {
	pos := Centered(box, canvas)
	if current != nil {
		pos = *current
	}
	d.dragging = true
	d.startPointer = pointer
	d.startPos = pos
	d.box = box
	d.canvas = canvas
	d.guides = Guides{}
	return pos
}

// Move returns the new container position for pointer. ok is false when no
// drag is in progress.
func (d *Dragger) Move(pointer card.Point) (pos card.Point, g Guides, ok bool) {
	if !d.dragging {
		return card.Point{}, Guides{}, false
	}
	pos = card.Point{
		X: d.startPos.X + pointer.X - d.startPointer.X,
		Y: d.startPos.Y + pointer.Y - d.startPointer.Y,
	}
	centre := Centered(d.box, d.canvas)
	if math.Abs(pos.X-centre.X) < SnapThreshold {
		pos.X = centre.X
		g.Vertical = true
	}
	if math.Abs(pos.Y-centre.Y) < SnapThreshold {
		pos.Y = centre.Y
		g.Horizontal = true
	}
	d.guides = g
	return pos, g, true
}

// End finishes the drag and hides the guides.
func (d *Dragger) End() {
	d.dragging = false
	d.guides = Guides{}
	d.flashUntil = time.Time{}
}

// Recenter returns the centred container position and flashes both guides
// for FlashDuration. It works in either state.
func (d *Dragger) Recenter(box, canvas Size, now time.Time) card.Point {
	d.flashUntil = now.Add(FlashDuration)
	return Centered(box, canvas)
}

// Guides reports guide visibility at now.
func (d *Dragger) Guides(now time.Time) Guides {
	g := d.guides
	if now.Before(d.flashUntil) {
		g = Guides{Horizontal: true, Vertical: true}
	}
	return g
}
