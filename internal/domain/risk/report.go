package risk

// ScoreReport is the immutable result of one analysis run.
type ScoreReport struct {
	totalScore int
	level      Level
	findings   []Finding
	notes      []Note
}

// Aggregate sums finding weights and derives the risk level. Inputs are
// copied, so later changes to the caller's slices do not leak into the report.
func Aggregate(findings []Finding, notes []Note) *ScoreReport {
	total := 0
	for _, f := range findings {
		total += f.Weight
	}

	return &ScoreReport{
		totalScore: total,
		level:      LevelForScore(total),
		findings:   append([]Finding(nil), findings...),
		notes:      append([]Note(nil), notes...),
	}
}

// TotalScore returns the sum of all finding weights.
func (r *ScoreReport) TotalScore() int {
	return r.totalScore
}

// Level returns the categorical risk level.
func (r *ScoreReport) Level() Level {
	return r.level
}

// Findings returns a copy of the findings in evaluation order.
func (r *ScoreReport) Findings() []Finding {
	return append([]Finding(nil), r.findings...)
}

// Notes returns a copy of the notes in the order they were produced.
func (r *ScoreReport) Notes() []Note {
	return append([]Note(nil), r.notes...)
}

// Issues returns finding descriptions, the form used by renderers and the scan log.
func (r *ScoreReport) Issues() []string {
	issues := make([]string, 0, len(r.findings))
	for _, f := range r.findings {
		issues = append(issues, f.Description)
	}
	return issues
}

// NoteTexts returns the note texts in order.
func (r *ScoreReport) NoteTexts() []string {
	texts := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		texts = append(texts, n.Text)
	}
	return texts
}
