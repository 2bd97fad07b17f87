// internal/game/collision.go
package game

// Colliding reports whether two circles of the given diameters overlap.
func Colliding(p1, p2 Vec2, size1, size2 float64) bool {
	return p1.Sub(p2).Len() < size1/2+size2/2
}

// ResolveOverlap pushes two overlapping circles apart along the line between
// their centers, each by half the penetration depth. Exactly coincident
// centers are left untouched; the next tick's movement breaks the tie.
// Returns the adjusted positions.
func ResolveOverlap(p1, p2 Vec2, size1, size2 float64) (Vec2, Vec2) {
	dir := p1.Sub(p2)
	dist := dir.Len()
	if dist == 0 {
		return p1, p2
	}

	overlap := (size1/2 + size2/2 - dist) / 2
	adj := dir.Scale(overlap / dist)

	return p1.Add(adj), p2.Sub(adj)
}
