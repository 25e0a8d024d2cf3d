package redline

// Project splits text into plain and annotated segments in document order.
//
// annotations must be ascending by Start and pairwise non-overlapping; they
// are validated with ValidateAnnotations and the first violation is returned
// instead of a partial result. Concatenating the text of the returned
// segments reproduces text exactly. Plain segments are never empty.
func Project(text string, annotations []Annotation) ([]Segment, error) {
	if err := ValidateAnnotations(text, annotations); err != nil {
		return nil, err
	}
	return project(text, annotations), nil
}

// project assumes annotations are valid for text.
func project(text string, annotations []Annotation) []Segment {
	if text == "" {
		return nil
	}

	segments := make([]Segment, 0, 2*len(annotations)+1)
	cursor := 0
	for i := range annotations {
		a := annotations[i]
		if cursor < a.Start {
			segments = append(segments, plainSegment(text, cursor, a.Start))
		}
		segments = append(segments, Segment{
			Kind:       SegmentAnnotated,
			Text:       text[a.Start:a.End],
			Start:      a.Start,
			End:        a.End,
			Index:      i,
			Annotation: &a,
		})
		cursor = a.End
	}
	if cursor < len(text) {
		segments = append(segments, plainSegment(text, cursor, len(text)))
	}
	return segments
}

func plainSegment(text string, start, end int) Segment {
	return Segment{
		Kind:  SegmentPlain,
		Text:  text[start:end],
		Start: start,
		End:   end,
		Index: -1,
	}
}

// Dismiss returns a copy of annotations without the entry at index.
// The relative order of the remaining annotations is preserved and the
// input slice is not modified.
func Dismiss(annotations []Annotation, index int) ([]Annotation, error) {
	return remove(annotations, index)
}

// Accept returns a copy of annotations without the entry at index.
// Accepting does not rewrite the document text; it has the same removal
// contract as Dismiss.
func Accept(annotations []Annotation, index int) ([]Annotation, error) {
	return remove(annotations, index)
}

func remove(annotations []Annotation, index int) ([]Annotation, error) {
	if index < 0 || index >= len(annotations) {
		return nil, &IndexError{Index: index, Len: len(annotations)}
	}
	out := make([]Annotation, 0, len(annotations)-1)
	out = append(out, annotations[:index]...)
	out = append(out, annotations[index+1:]...)
	return out, nil
}
