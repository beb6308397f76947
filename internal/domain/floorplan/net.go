package floorplan

// Net represents a weighted hyperedge across blocks, modeling logical
// connectivity. Halo is carried from the input adapters for downstream
// consumers; the cost kernel does not read it.
type Net struct {
	Name   string   `json:"name" validate:"required"`
	Blocks []string `json:"blocks" validate:"required,min=1,id_list"`
	Weight float64  `json:"weight" validate:"gte=0"`
	Halo   float64  `json:"halo,omitempty" validate:"gte=0"`
}

// NewNet creates a Net connecting the given block identifiers.
func NewNet(name string, blocks []string, weight float64) (Net, error) {
	return NewNetWithHalo(name, blocks, weight, 0)
}

// NewNetWithHalo creates a Net with an explicit halo distance.
func NewNetWithHalo(name string, blocks []string, weight, halo float64) (Net, error) {
	n := Net{Name: name, Blocks: blocks, Weight: weight, Halo: halo}
	if err := n.Validate(); err != nil {
		return Net{}, err
	}
	return n, nil
}

// Validate checks the net construction invariants.
func (n Net) Validate() error {
	if n.Name == "" {
		return NewPlacementError(ErrorInvalidNet, "net name cannot be empty")
	}
	if len(n.Blocks) == 0 {
		return NewPlacementErrorWithField(ErrorInvalidNet, "net must connect at least one block", n.Name)
	}
	for _, id := range n.Blocks {
		if id == "" {
			return NewPlacementErrorWithField(ErrorInvalidNet, "net references an empty block ID", n.Name)
		}
	}
	if n.Weight < 0 {
		return NewPlacementErrorWithField(ErrorInvalidNet, "net weight must be non-negative", n.Name)
	}
	if n.Halo < 0 {
		return NewPlacementErrorWithField(ErrorInvalidNet, "net halo must be non-negative", n.Name)
	}
	return nil
}

// ValidateNets validates a net list.
func ValidateNets(nets []Net) error {
	for _, n := range nets {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}
