package roster

// Mark is the usage of a trait that can only be spent once: vice and virtue.
type Mark int

const (
	MarkUnused Mark = iota
	MarkUsed
)

// Toggle flips between unused and used.
func (m Mark) Toggle() Mark {
	if m == MarkUsed {
		return MarkUnused
	}
	return MarkUsed
}

func (m Mark) String() string {
	if m == MarkUsed {
		return "used"
	}
	return "unused"
}

// Stage is the usage of a trait that is played out over time: moment and brink.
type Stage int

const (
	StageUnused Stage = iota
	StageInUse
	StageUsed
)

// Next cycles unused -> in use -> used -> unused.
func (s Stage) Next() Stage {
	switch s {
	case StageUnused:
		return StageInUse
	case StageInUse:
		return StageUsed
	default:
		return StageUnused
	}
}

func (s Stage) String() string {
	switch s {
	case StageInUse:
		return "in use"
	case StageUsed:
		return "used"
	default:
		return "unused"
	}
}
