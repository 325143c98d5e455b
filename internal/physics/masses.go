package physics

import (
	"fmt"

	"github.com/san-kum/armtorque/internal/statics"
)

// Role names of the mass inventory, in inventory order.
const (
	RolePayload = "payload"
	RoleLink1   = "link1"
	RoleLink2   = "link2"
	RoleLink3   = "link3"
	RoleElbow   = "elbow"
	RoleWrist   = "wrist"
)

// Roles lists every mass role in the order the control surface shows them.
var Roles = []string{RolePayload, RoleLink1, RoleLink2, RoleLink3, RoleElbow, RoleWrist}

// Masses is the inventory of point masses in kilograms. Link masses act at
// link midpoints, joint masses at their pivots and the payload at the tip.
// The shoulder carries no lumped mass.
type Masses struct {
	Payload float64 `yaml:"payload" toml:"payload" json:"payload"`
	Link1   float64 `yaml:"link1" toml:"link1" json:"link1"`
	Link2   float64 `yaml:"link2" toml:"link2" json:"link2"`
	Link3   float64 `yaml:"link3" toml:"link3" json:"link3"`
	Elbow   float64 `yaml:"elbow" toml:"elbow" json:"elbow"`
	Wrist   float64 `yaml:"wrist" toml:"wrist" json:"wrist"`
}

func DefaultMasses() Masses {
	return Masses{
		Payload: 4.0,
		Link1:   0.367,
		Link2:   0.44,
		Link3:   0.15,
		Elbow:   1.09,
		Wrist:   0.82,
	}
}

func (m Masses) Validate() error {
	for _, role := range Roles {
		v, _ := m.Get(role)
		if err := statics.CheckMass("masses."+role, v); err != nil {
			return err
		}
	}
	return nil
}

func (m Masses) Total() float64 {
	return m.Payload + m.Link1 + m.Link2 + m.Link3 + m.Elbow + m.Wrist
}

// PointMasses places the whole inventory at pos: the three link midpoints,
// the elbow and wrist joints, then the payload.
func (m Masses) PointMasses(pos Positions) []statics.PointMass {
	return []statics.PointMass{
		{Name: RoleLink1, Pos: pos.Link1Mid, Mass: m.Link1},
		{Name: RoleLink2, Pos: pos.Link2Mid, Mass: m.Link2},
		{Name: RoleLink3, Pos: pos.Link3Mid, Mass: m.Link3},
		{Name: RoleElbow, Pos: pos.Elbow, Mass: m.Elbow},
		{Name: RoleWrist, Pos: pos.Wrist, Mass: m.Wrist},
		{Name: RolePayload, Pos: pos.Tip, Mass: m.Payload},
	}
}

// DistalToElbow returns the masses carried by the elbow joint. The elbow
// mass sits on the pivot and is left out.
func (m Masses) DistalToElbow(pos Positions) []statics.PointMass {
	return []statics.PointMass{
		{Name: RoleLink2, Pos: pos.Link2Mid, Mass: m.Link2},
		{Name: RoleLink3, Pos: pos.Link3Mid, Mass: m.Link3},
		{Name: RoleWrist, Pos: pos.Wrist, Mass: m.Wrist},
		{Name: RolePayload, Pos: pos.Tip, Mass: m.Payload},
	}
}

func (m Masses) Get(role string) (float64, bool) {
	switch role {
	case RolePayload:
		return m.Payload, true
	case RoleLink1:
		return m.Link1, true
	case RoleLink2:
		return m.Link2, true
	case RoleLink3:
		return m.Link3, true
	case RoleElbow:
		return m.Elbow, true
	case RoleWrist:
		return m.Wrist, true
	}
	return 0, false
}

func (m Masses) GetParams() map[string]float64 {
	params := make(map[string]float64, len(Roles))
	for _, role := range Roles {
		params[role], _ = m.Get(role)
	}
	return params
}

func (m *Masses) SetParam(name string, value float64) error {
	switch name {
	case RolePayload:
		m.Payload = value
	case RoleLink1:
		m.Link1 = value
	case RoleLink2:
		m.Link2 = value
	case RoleLink3:
		m.Link3 = value
	case RoleElbow:
		m.Elbow = value
	case RoleWrist:
		m.Wrist = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
