package tensors

// Role is the meaning of one tensor in an SSD detector's output.
type Role int

const (
	// RoleBoxes holds four floats per detection: y_min, x_min, y_max, x_max.
	RoleBoxes Role = iota
	// RoleScores holds one confidence per detection.
	RoleScores
	// RoleNumDetections holds the detection count at index 0.
	RoleNumDetections
	// RoleClasses holds one class index per detection. Optional.
	RoleClasses

	numRoles
)

// Role tags used by upstream inference producers. The literal strings are
// part of the metadata contract and must not change.
const (
	BoxesID         = "Gst.Model.ObjectDetector.Boxes"
	ScoresID        = "Gst.Model.ObjectDetector.Scores"
	NumDetectionsID = "Gst.Model.ObjectDetector.NumDetections"
	ClassesID       = "Gst.Model.ObjectDetector.Classes"
)

var roleIDs = [numRoles]string{
	RoleBoxes:         BoxesID,
	RoleScores:        ScoresID,
	RoleNumDetections: NumDetectionsID,
	RoleClasses:       ClassesID,
}

// ID returns the tag a tensor carries when it plays this role.
func (r Role) ID() string {
	if r < 0 || r >= numRoles {
		return ""
	}
	return roleIDs[r]
}

func (r Role) String() string {
	switch r {
	case RoleBoxes:
		return "boxes"
	case RoleScores:
		return "scores"
	case RoleNumDetections:
		return "num-detections"
	case RoleClasses:
		return "classes"
	default:
		return "unknown"
	}
}

// RoleFromID maps a tensor tag to its role.
func RoleFromID(id string) (Role, bool) {
	for r, rid := range roleIDs {
		if rid == id {
			return Role(r), true
		}
	}
	return 0, false
}

// Group is the tensors produced together by one inference invocation.
type Group struct {
	Tensors []*Tensor
}

// NewGroup returns a group holding ts in order.
func NewGroup(ts ...*Tensor) *Group {
	return &Group{Tensors: ts}
}

// Len is the number of tensors in the group.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Tensors)
}

// IndexOf returns the position of the first tensor tagged id, or -1.
func (g *Group) IndexOf(id string) int {
	if g == nil {
		return -1
	}
	for i, t := range g.Tensors {
		if t != nil && t.ID == id {
			return i
		}
	}
	return -1
}

// Roles maps each role to the tensor that carries it in one group.
type Roles [numRoles]*Tensor

// ResolveRoles builds the role mapping for g in a single pass. When several
// tensors carry the same tag the first one wins.
func ResolveRoles(g *Group) Roles {
	var roles Roles
	if g == nil {
		return roles
	}
	for _, t := range g.Tensors {
		if t == nil {
			continue
		}
		if r, ok := RoleFromID(t.ID); ok && roles[r] == nil {
			roles[r] = t
		}
	}
	return roles
}

// Get returns the tensor playing role r.
func (r Roles) Get(role Role) (*Tensor, bool) {
	if role < 0 || role >= numRoles {
		return nil, false
	}
	t := r[role]
	return t, t != nil
}

// Has reports whether some tensor plays role.
func (r Roles) Has(role Role) bool {
	_, ok := r.Get(role)
	return ok
}

// detector reports whether a group of size n with these roles is an SSD
// output: 3 tensors (boxes, scores, num-detections) or 4 with classes.
func (r Roles) detector(n int) bool {
	if n != 3 && n != 4 {
		return false
	}
	if !r.Has(RoleBoxes) || !r.Has(RoleScores) || !r.Has(RoleNumDetections) {
		return false
	}
	return n == 3 || r.Has(RoleClasses)
}

// Set is the ordered collection of tensor groups attached to one frame.
type Set []*Group

// FindDetectorGroup returns the first group that is a valid SSD output.
//
// Groups are examined in order and the first valid one is used; later valid
// groups are ignored rather than ranked.
//
// Returns:
//   - *Group: The selected group.
//   - Roles: Its role mapping.
//   - bool: False when no group qualifies.
func (s Set) FindDetectorGroup() (*Group, Roles, bool) {
	for _, g := range s {
		if g == nil {
			continue
		}
		roles := ResolveRoles(g)
		if roles.detector(g.Len()) {
			return g, roles, true
		}
	}
	return nil, Roles{}, false
}
