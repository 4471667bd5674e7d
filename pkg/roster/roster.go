package roster

import (
	"fmt"
	"strings"
)

const (
	// DefaultPlayers is the table size a roster starts with.
	DefaultPlayers = 4
	// MaxPlayers is the largest table the roster tracks.
	MaxPlayers = 7
)

// Field names one editable text field of a player.
type Field string

const (
	FieldName     Field = "name"
	FieldRealName Field = "real_name"
	FieldVice     Field = "vice"
	FieldVirtue   Field = "virtue"
	FieldMoment   Field = "moment"
	FieldBrink    Field = "brink"
)

// Fields lists the player fields in display order.
var Fields = []Field{FieldName, FieldRealName, FieldVice, FieldVirtue, FieldMoment, FieldBrink}

// Trait names one usable character trait.
type Trait string

const (
	TraitVice   Trait = "vice"
	TraitVirtue Trait = "virtue"
	TraitMoment Trait = "moment"
	TraitBrink  Trait = "brink"
)

// Traits lists the traits in display order.
var Traits = []Trait{TraitVice, TraitVirtue, TraitMoment, TraitBrink}

// Usage records how far each trait has been played.
type Usage struct {
	Vice   Mark  `json:"vice"`
	Virtue Mark  `json:"virtue"`
	Moment Stage `json:"moment"`
	Brink  Stage `json:"brink"`
}

// Player is one character at the table.
type Player struct {
	Name     string `json:"name,omitempty"`
	RealName string `json:"real_name,omitempty"`
	Vice     string `json:"vice,omitempty"`
	Virtue   string `json:"virtue,omitempty"`
	Moment   string `json:"moment,omitempty"`
	Brink    string `json:"brink,omitempty"`
	Usage    Usage  `json:"usage"`
}

// Get returns the value of a text field.
func (p Player) Get(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldRealName:
		return p.RealName
	case FieldVice:
		return p.Vice
	case FieldVirtue:
		return p.Virtue
	case FieldMoment:
		return p.Moment
	case FieldBrink:
		return p.Brink
	default:
		return ""
	}
}

// With returns the player with one text field replaced.
func (p Player) With(f Field, value string) (Player, error) {
	switch f {
	case FieldName:
		p.Name = value
	case FieldRealName:
		p.RealName = value
	case FieldVice:
		p.Vice = value
	case FieldVirtue:
		p.Virtue = value
	case FieldMoment:
		p.Moment = value
	case FieldBrink:
		p.Brink = value
	default:
		return p, fmt.Errorf("unknown player field %q", f)
	}
	return p, nil
}

// Use advances the usage of a trait one step.
func (p Player) Use(t Trait) (Player, error) {
	switch t {
	case TraitVice:
		p.Usage.Vice = p.Usage.Vice.Toggle()
	case TraitVirtue:
		p.Usage.Virtue = p.Usage.Virtue.Toggle()
	case TraitMoment:
		p.Usage.Moment = p.Usage.Moment.Next()
	case TraitBrink:
		p.Usage.Brink = p.Usage.Brink.Next()
	default:
		return p, fmt.Errorf("unknown trait %q", t)
	}
	return p, nil
}

// UsageOf returns the display label of a trait's usage.
func (p Player) UsageOf(t Trait) string {
	switch t {
	case TraitVice:
		return p.Usage.Vice.String()
	case TraitVirtue:
		return p.Usage.Virtue.String()
	case TraitMoment:
		return p.Usage.Moment.String()
	case TraitBrink:
		return p.Usage.Brink.String()
	default:
		return ""
	}
}

// Spent reports whether a trait has been fully used.
func (p Player) Spent(t Trait) bool {
	switch t {
	case TraitVice:
		return p.Usage.Vice == MarkUsed
	case TraitVirtue:
		return p.Usage.Virtue == MarkUsed
	case TraitMoment:
		return p.Usage.Moment == StageUsed
	case TraitBrink:
		return p.Usage.Brink == StageUsed
	default:
		return false
	}
}

// DisplayName returns the character name, or a placeholder.
func (p Player) DisplayName() string {
	if strings.TrimSpace(p.Name) == "" {
		return "Player Name"
	}
	return p.Name
}

// Roster holds up to MaxPlayers players. Only the first Count are shown;
// the rest keep their data so shrinking and growing the table loses nothing.
type Roster struct {
	count   int
	players [MaxPlayers]Player
}

// New returns a roster showing count players, clamped to 1..MaxPlayers.
func New(count int) Roster {
	r := Roster{count: DefaultPlayers}
	r, _ = r.SetCount(count)
	return r
}

func (r Roster) Count() int { return r.count }

// SetCount changes how many players are shown. Values outside 1..MaxPlayers
// are rejected and the roster is returned unchanged.
func (r Roster) SetCount(n int) (Roster, error) {
	if n < 1 || n > MaxPlayers {
		return r, fmt.Errorf("player count %d outside 1..%d", n, MaxPlayers)
	}
	r.count = n
	return r, nil
}

// Players returns the visible players.
func (r Roster) Players() []Player {
	out := make([]Player, r.count)
	copy(out, r.players[:r.count])
	return out
}

// Player returns the player at index i.
func (r Roster) Player(i int) (Player, error) {
	if i < 0 || i >= r.count {
		return Player{}, fmt.Errorf("player %d out of range", i+1)
	}
	return r.players[i], nil
}

// Update replaces one text field of player i.
func (r Roster) Update(i int, f Field, value string) (Roster, error) {
	p, err := r.Player(i)
	if err != nil {
		return r, err
	}
	p, err = p.With(f, value)
	if err != nil {
		return r, err
	}
	r.players[i] = p
	return r, nil
}

// Use advances a trait of player i.
func (r Roster) Use(i int, t Trait) (Roster, error) {
	p, err := r.Player(i)
	if err != nil {
		return r, err
	}
	p, err = p.Use(t)
	if err != nil {
		return r, err
	}
	r.players[i] = p
	return r, nil
}
