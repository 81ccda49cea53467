package game

import "testing"

func TestRecent(t *testing.T) {
	history := []Result{
		{Round: 1, Label: LabelMiss},
		{Round: 2, Label: LabelGood},
		{Round: 3, Label: LabelPerfect},
	}
	tests := []struct {
		n      int
		rounds []int
		labels string
	}{
		{0, nil, ""},
		{2, []int{2, 3}, "Good! Perfect!"},
		{5, []int{1, 2, 3}, "Miss! Good! Perfect!"},
	}
	for _, tt := range tests {
		got := Recent(history, tt.n)
		if len(got) != len(tt.rounds) {
			t.Fatalf("Recent(%d) len = %d, want %d", tt.n, len(got), len(tt.rounds))
		}
		for i, r := range got {
			if r.Round != tt.rounds[i] {
				t.Errorf("Recent(%d)[%d].Round = %d, want %d", tt.n, i, r.Round, tt.rounds[i])
			}
		}
		if labels := RecentLabels(history, tt.n); labels != tt.labels {
			t.Errorf("RecentLabels(%d) = %q, want %q", tt.n, labels, tt.labels)
		}
	}
}

func TestRecentFromController(t *testing.T) {
	c := newTestController(t, Classic)
	for i := 0; i < 4; i++ {
		c.Start()
		c.RequestStop()
	}
	if got := RecentLabels(c.History(), 3); got != "Miss! Miss! Miss!" {
		t.Errorf("RecentLabels = %q", got)
	}
}
