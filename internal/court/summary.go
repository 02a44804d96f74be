package court

import (
	"fmt"
	"strings"
)

// Grade is the health verdict derived from the share of innocent defendants.
type Grade struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

var grades = []struct {
	minInnocentRate float64
	grade           Grade
}{
	{80, Grade{Name: "EXCELLENT", Message: "Your sperm motility is in the optimal range! Elite swimmers detected."}},
	{60, Grade{Name: "GOOD", Message: "Your sperm motility is healthy. Most swimmers showing strong performance."}},
	{40, Grade{Name: "FAIR", Message: "Your sperm motility is borderline. Consider lifestyle improvements."}},
	{0, Grade{Name: "NEEDS IMPROVEMENT", Message: "Low motility detected. Consult a healthcare provider about fertility optimization."}},
}

var sentences = []string{
	"Life in the left testicle without parole.",
	"Sentenced to eternal swimming in circles.",
	"Banished to the vas deferens for 1000 laps.",
	"Community service: 500 hours of tail-wagging therapy.",
	"Frozen in cryogenic storage indefinitely.",
}

// Summary is the final verdict screen.
type Summary struct {
	Guilty       int     `json:"guilty"`
	Innocent     int     `json:"innocent"`
	InnocentRate float64 `json:"innocentRate"`
	Grade        Grade   `json:"grade"`
	Sentence     string  `json:"sentence"`
	Score        int     `json:"score"`
	Objections   int     `json:"objections"`
	Unlocked     int     `json:"unlocked"`
	Achievements int     `json:"achievements"`
	Record       string  `json:"record"`
}

// Summarize computes the verdict screen for s.
func Summarize(s *Session) Summary {
	total := s.docket.Len()
	innocent := total - s.guilty
	rate := float64(innocent*100) / float64(total) //nolint:mnd // percentage

	summary := Summary{
		Guilty:       s.guilty,
		Innocent:     innocent,
		InnocentRate: rate,
		Sentence:     sentences[s.guilty%len(sentences)],
		Score:        s.score,
		Objections:   s.objections,
		Unlocked:     s.unlocked.Count(),
		Achievements: len(catalogue),
		Record:       RecordString(s.verdicts),
	}
	for _, g := range grades {
		if rate >= g.minInnocentRate {
			summary.Grade = g.grade
			break
		}
	}
	return summary
}

// RecordString encodes verdicts compactly, one letter per case: G for guilty and I for innocent.
func RecordString(verdicts []Verdict) string {
	var b strings.Builder
	for _, v := range verdicts {
		if v == Guilty {
			b.WriteByte('G')
		} else {
			b.WriteByte('I')
		}
	}
	return b.String()
}

// ShareText is the plain-text verdict players can paste elsewhere.
func (s Summary) ShareText() string {
	var b strings.Builder
	b.WriteString("🏛️ SPERM COURT™ VERDICT 🏛️\n\n")
	fmt.Fprintf(&b, "⚖️ %d GUILTY | %d INNOCENT\n", s.Guilty, s.Innocent)
	fmt.Fprintf(&b, "📊 Health Grade: %s\n", s.Grade.Name)
	fmt.Fprintf(&b, "🎯 Score: %d points\n", s.Score)
	fmt.Fprintf(&b, "🏆 Achievements: %d/%d\n\n", s.Unlocked, s.Achievements)
	fmt.Fprintf(&b, "⚡ %d objections raised!\n\n", s.Objections)
	b.WriteString("Powered by Sperm Racing Kit 🏁\nspermracing.com")
	return b.String()
}
