package court_test

import (
	"testing"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	g, i := court.Guilty, court.Innocent
	tests := []struct {
		name         string
		verdicts     []court.Verdict
		wantGrade    string
		wantSentence string
		wantRate     float64
	}{
		{
			name:         "all innocent",
			verdicts:     []court.Verdict{i, i, i, i, i},
			wantGrade:    "EXCELLENT",
			wantSentence: "Life in the left testicle without parole.",
			wantRate:     100,
		},
		{
			name:         "one guilty",
			verdicts:     []court.Verdict{g, i, i, i, i},
			wantGrade:    "EXCELLENT",
			wantSentence: "Sentenced to eternal swimming in circles.",
			wantRate:     80,
		},
		{
			name:         "two guilty",
			verdicts:     []court.Verdict{g, i, i, g, i},
			wantGrade:    "GOOD",
			wantSentence: "Banished to the vas deferens for 1000 laps.",
			wantRate:     60,
		},
		{
			name:         "three guilty",
			verdicts:     []court.Verdict{g, g, i, g, i},
			wantGrade:    "FAIR",
			wantSentence: "Community service: 500 hours of tail-wagging therapy.",
			wantRate:     40,
		},
		{
			name:         "all guilty wraps the sentence list",
			verdicts:     []court.Verdict{g, g, g, g, g},
			wantGrade:    "NEEDS IMPROVEMENT",
			wantSentence: "Life in the left testicle without parole.",
			wantRate:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTrial(t)
			judgeAll(s, epoch, tt.verdicts...)
			summary := court.Summarize(s)

			require.Equal(t, tt.wantGrade, summary.Grade.Name)
			require.Equal(t, tt.wantSentence, summary.Sentence)
			require.InDelta(t, tt.wantRate, summary.InnocentRate, 1e-9)
			require.Equal(t, 5, summary.Guilty+summary.Innocent)
			require.Equal(t, 5, summary.Achievements)
		})
	}
}

func TestSummary_ShareText(t *testing.T) {
	s := newTrial(t)
	s.Objection(epoch)
	judgeAll(s, epoch, court.Guilty, court.Innocent, court.Innocent, court.Guilty, court.Innocent)

	want := "🏛️ SPERM COURT™ VERDICT 🏛️\n\n" +
		"⚖️ 2 GUILTY | 3 INNOCENT\n" +
		"📊 Health Grade: GOOD\n" +
		"🎯 Score: 460 points\n" +
		"🏆 Achievements: 2/5\n\n" +
		"⚡ 1 objections raised!\n\n" +
		"Powered by Sperm Racing Kit 🏁\nspermracing.com"
	require.Equal(t, want, court.Summarize(s).ShareText())
}
