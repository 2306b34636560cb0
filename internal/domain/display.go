package domain

// DisplayField is one candidate line of the status embed
type DisplayField struct {
	// ID is stable across renders and used for visibility and rotation bookkeeping
	ID     string
	Label  string
	Value  string
	Inline bool
}

// DisplaySettings controls which fields a server's embed shows.
// Fields absent from the map are visible; only an explicit false hides a field.
type DisplaySettings struct {
	Fields         map[string]bool `json:"fields,omitempty" yaml:"fields"`
	Rotation       bool            `json:"rotation" yaml:"rotation"`
	RotationCursor int             `json:"rotationCursor" yaml:"rotationCursor" validate:"gte=0"`
	Password       string          `json:"password,omitempty" yaml:"password"`
	NoPassword     bool            `json:"noPassword" yaml:"noPassword"`
	RevealPassword bool            `json:"revealPassword" yaml:"revealPassword"`
}

// Visible reports whether the field with the given ID should be shown
func (d DisplaySettings) Visible(id string) bool {
	shown, ok := d.Fields[id]
	return !ok || shown
}
