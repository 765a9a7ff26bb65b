package stock

// StagedQuantity is the unsaved working copy of an item's quantity used
// by the edit form. Add and Remove change only the working value; the
// persisted quantity is written back only when the surrounding form is
// submitted. Discarding the value discards all staged changes.
type StagedQuantity struct {
	persisted int
	working   int
}

// NewStagedQuantity starts a staging session from the persisted quantity.
func NewStagedQuantity(persisted int) *StagedQuantity {
	if persisted < 0 {
		persisted = 0
	}
	return &StagedQuantity{persisted: persisted, working: persisted}
}

// Add stages an increase. Non-positive amounts are ignored; the entry
// field only accepts non-negative integers.
func (s *StagedQuantity) Add(amount int) {
	if amount <= 0 {
		return
	}
	s.working += amount
}

// Remove stages a decrease, clamping the working value at zero.
func (s *StagedQuantity) Remove(amount int) {
	if amount <= 0 {
		return
	}
	s.working -= amount
	if s.working < 0 {
		s.working = 0
	}
}

// Working returns the staged, not-yet-persisted quantity.
func (s *StagedQuantity) Working() int { return s.working }

// Persisted returns the quantity the session started from.
func (s *StagedQuantity) Persisted() int { return s.persisted }

// Dirty reports whether the working value diverges from the persisted one.
func (s *StagedQuantity) Dirty() bool { return s.working != s.persisted }

// Reset discards staged changes, returning the working value to the
// persisted quantity.
func (s *StagedQuantity) Reset() { s.working = s.persisted }
