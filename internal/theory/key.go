package theory

import "fmt"

// Key is a tonic pitch class together with a scale.
type Key struct {
	Tonic PitchClass
	Scale Scale
}

// DiatonicChord is one row of a key's diatonic chord table.
type DiatonicChord struct {
	Degree  int
	Roman   string
	Root    PitchClass
	Quality Quality
	Symbol  string
	Tones   []PitchClass
}

// NewKey parses a tonic name and a scale identifier. The tonic is checked
// first, so a request with both wrong reports ErrInvalidKey.
func NewKey(tonic, scale string) (Key, error) {
	pc, err := ParsePitchClass(tonic)
	if err != nil {
		return Key{}, err
	}
	s, err := ParseScale(scale)
	if err != nil {
		return Key{}, err
	}
	return Key{Tonic: pc, Scale: s}, nil
}

// DegreePitchClasses returns the pitch class of each scale degree, degree 1 first.
func (k Key) DegreePitchClasses() [DegreeCount]PitchClass {
	var out [DegreeCount]PitchClass
	for i, off := range k.Scale.Offsets() {
		out[i] = k.Tonic.Transpose(off)
	}
	return out
}

// PitchClass returns the pitch class at a 1-based scale degree.
func (k Key) PitchClass(degree int) PitchClass {
	return k.DegreePitchClasses()[degreeIndex(degree)]
}

// Contains reports whether pc is diatonic to the key.
func (k Key) Contains(pc PitchClass) bool {
	for _, d := range k.DegreePitchClasses() {
		if d == pc {
			return true
		}
	}
	return false
}

// DiatonicQuality stacks diatonic thirds above the degree and names the result.
// With sevenths a fourth third is added.
func (k Key) DiatonicQuality(degree int, sevenths bool) (Quality, error) {
	if degree < 1 || degree > DegreeCount {
		return 0, fmt.Errorf("theory: degree %d out of range 1..%d", degree, DegreeCount)
	}
	offsets := k.Scale.Offsets()
	i := degreeIndex(degree)
	above := func(step int) int {
		return mod12(offsets[(i+step)%DegreeCount] - offsets[i])
	}

	seventh := -1
	if sevenths {
		seventh = above(6)
	}
	return qualityFromStack(above(2), above(4), seventh)
}

// Chord returns the tones of the diatonic chord on the given degree.
func (k Key) Chord(degree int, sevenths bool) (DiatonicChord, error) {
	q, err := k.DiatonicQuality(degree, sevenths)
	if err != nil {
		return DiatonicChord{}, err
	}
	root := k.PitchClass(degree)
	intervals := q.Intervals()
	tones := make([]PitchClass, len(intervals))
	for i, iv := range intervals {
		tones[i] = root.Transpose(iv)
	}
	return DiatonicChord{
		Degree:  degree,
		Roman:   Roman(degree, q),
		Root:    root,
		Quality: q,
		Symbol:  q.Symbol(root),
		Tones:   tones,
	}, nil
}

// DiatonicChords returns the chord on every degree of the key.
func (k Key) DiatonicChords(sevenths bool) ([]DiatonicChord, error) {
	chords := make([]DiatonicChord, 0, DegreeCount)
	for degree := 1; degree <= DegreeCount; degree++ {
		c, err := k.Chord(degree, sevenths)
		if err != nil {
			return nil, fmt.Errorf("degree %d of %s: %w", degree, k, err)
		}
		chords = append(chords, c)
	}
	return chords, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Tonic, k.Scale)
}

func degreeIndex(degree int) int {
	return ((degree-1)%DegreeCount + DegreeCount) % DegreeCount
}
