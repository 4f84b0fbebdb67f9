package snake

// CollisionKind is the outcome of a collision check.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionWall
	CollisionSelf
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "unknown"
	}
}

// CheckCollision tests a freshly computed head against the arena bounds and
// the body as it stood before the step that produced it.
//
// body must be the pre-step snapshot: after the shift the second segment sits
// on the old head cell, and the head would trivially match itself.
// When the head is both outside the arena and on the body only the wall
// collision is reported.
func CheckCollision(newHead Position, body []Position, arena Arena) CollisionKind {
	if !arena.Contains(newHead) {
		return CollisionWall
	}
	for _, seg := range body {
		if seg == newHead {
			return CollisionSelf
		}
	}
	return CollisionNone
}

// CheckEating reports whether the head is on the food cell.
func CheckEating(head, food Position) bool {
	return head == food
}
