package swap

import "github.com/pkg/errors"

// Candidate is the subset of Swap variants eligible for the narrower candidate
// instruction set. A variant joins by implementing isCandidate.
type Candidate interface {
	Swap
	isCandidate()
	// Swap widens the candidate back to the full union.
	Swap() Swap
}

func (SolFi) isCandidate()    {}
func (Obric) isCandidate()    {}
func (ZeroFi) isCandidate()   {}
func (HumidiFi) isCandidate() {}
func (TesseraV) isCandidate() {}
func (GoonFi) isCandidate()   {}

func (s SolFi) Swap() Swap    { return s }
func (s Obric) Swap() Swap    { return s }
func (s ZeroFi) Swap() Swap   { return s }
func (s HumidiFi) Swap() Swap { return s }
func (s TesseraV) Swap() Swap { return s }
func (s GoonFi) Swap() Swap   { return s }

// ToCandidate narrows s to the candidate subset, keeping its fields unchanged.
func ToCandidate(s Swap) (Candidate, error) {
	if c, ok := s.(Candidate); ok {
		return c, nil
	}
	name := "<nil>"
	if s != nil {
		name = s.Name()
	}
	return nil, errors.Wrapf(ErrInvalidCandidate, "%s", name)
}

// Candidates lists the zero value of every candidate variant.
func Candidates() []Candidate {
	var out []Candidate
	for _, v := range variants {
		if c, ok := v.(Candidate); ok {
			out = append(out, c)
		}
	}
	return out
}
