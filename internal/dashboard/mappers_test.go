package dashboard

import (
	"fmt"
	"testing"

	"gametrack/internal/domain"
)

func TestMapTrendReversesIntoChronologicalOrder(t *testing.T) {
	matches := matchesNewestFirst(5, alwaysWin)
	trend := MapTrend(matches, NewSelection())

	if len(trend.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(trend.Points))
	}
	for i, p := range trend.Points {
		if p.Index != i+1 || p.Label != fmt.Sprintf("Match %d", i+1) {
			t.Errorf("point %d labelled %d %q", i, p.Index, p.Label)
		}
		if want := matches[len(matches)-1-i].MatchID; p.MatchID != want {
			t.Errorf("point %d is %s, want %s", i, p.MatchID, want)
		}
	}
	if trend.Points[0].MatchID != "NA1_1" {
		t.Errorf("oldest match should come first, got %s", trend.Points[0].MatchID)
	}
}

func TestMapComparisonReversesIntoChronologicalOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		matches := matchesNewestFirst(n, alwaysWin)
		cmp := MapComparison(matches, NewSelection())

		if len(cmp.Points) != n {
			t.Fatalf("n=%d: expected %d points, got %d", n, n, len(cmp.Points))
		}
		for i, p := range cmp.Points {
			if p.Index != i+1 || p.Label != fmt.Sprintf("M%d", i+1) || p.FullLabel != fmt.Sprintf("Match %d", i+1) {
				t.Errorf("n=%d: point %d labelled %d %q %q", n, i, p.Index, p.Label, p.FullLabel)
			}
			src := matches[len(matches)-1-i]
			if p.MatchID != src.MatchID || p.Kills != src.Kills || p.Deaths != src.Deaths || p.Assists != src.Assists {
				t.Errorf("n=%d: point %d is %+v, want %s", n, i, p, src.MatchID)
			}
		}
	}
}

func TestMapTrendHandlesEmptyAndSingle(t *testing.T) {
	if trend := MapTrend(nil, NewSelection()); len(trend.Points) != 0 {
		t.Errorf("expected no points, got %d", len(trend.Points))
	}
	trend := MapTrend(matchesNewestFirst(1, alwaysWin), NewSelection())
	if len(trend.Points) != 1 || trend.Points[0].Label != "Match 1" || trend.Points[0].MatchID != "NA1_1" {
		t.Errorf("unexpected single point %+v", trend.Points)
	}
}

func TestMapTrendExcludesWinFromSeries(t *testing.T) {
	trend := MapTrend(matchesNewestFirst(2, alwaysWin), NewSelection())

	var keys []string
	for _, s := range trend.Series {
		keys = append(keys, s.Key)
	}
	assertLines(t, []string{StatKills, StatDeaths, StatAssists}, keys)

	if v, ok := trend.Points[0].Values[StatWin]; !ok || v != 1 {
		t.Errorf("win value should still be carried on points, got %v %v", v, ok)
	}
}

func TestWinOnlySelection(t *testing.T) {
	matches := matchesNewestFirst(3, alwaysWin)
	sel := SelectionOf(StatWin)

	if trend := MapTrend(matches, sel); !trend.Placeholder() {
		t.Error("win alone should leave the trend chart on its placeholder")
	}
	if cmp := MapComparison(matches, sel); cmp.Visible() {
		t.Error("win alone should hide the comparison chart")
	}
}

func TestSingleCoreStatSelection(t *testing.T) {
	matches := matchesNewestFirst(3, alwaysWin)
	sel := SelectionOf(StatKills)

	trend := MapTrend(matches, sel)
	if len(trend.Series) != 1 || trend.Series[0].Color != Color(StatKills) {
		t.Fatalf("expected one kills series, got %+v", trend.Series)
	}

	cmp := MapComparison(matches, sel)
	if !cmp.Visible() {
		t.Fatal("comparison should be visible")
	}
	if len(cmp.Series) != 3 {
		t.Errorf("comparison always draws kills, deaths and assists, got %d", len(cmp.Series))
	}
}

func TestEmptySelection(t *testing.T) {
	matches := matchesNewestFirst(2, alwaysWin)
	sel := SelectionOf()

	if !MapTrend(matches, sel).Placeholder() {
		t.Error("empty selection should show the placeholder")
	}
	if MapComparison(matches, sel).Visible() {
		t.Error("empty selection should hide the comparison")
	}
}

func TestComparisonMutesLosses(t *testing.T) {
	// newest is a loss, the rest are wins
	matches := matchesNewestFirst(3, func(i int) bool { return i != 0 })
	cmp := MapComparison(matches, NewSelection())

	last := cmp.Points[len(cmp.Points)-1]
	if last.Win || last.Outcome() != "Defeat" {
		t.Fatalf("last point should be the loss, got %+v", last)
	}
	for _, s := range cmp.Series {
		if got := cmp.BarColor(s, last); got != MutedColor {
			t.Errorf("%s bar on a loss is %s", s.Key, got)
		}
		if got := cmp.BarColor(s, cmp.Points[0]); got != s.Color {
			t.Errorf("%s bar on a win is %s, want %s", s.Key, got, s.Color)
		}
	}

	if cmp.Points[0].Label != "M1" || cmp.Points[0].FullLabel != "Match 1" {
		t.Errorf("unexpected labels %q %q", cmp.Points[0].Label, cmp.Points[0].FullLabel)
	}
}

func TestStatValue(t *testing.T) {
	kp := 0.64
	m := domain.PlayerMatchStats{Kills: 7, Win: true, KillParticipation: &kp}

	tests := []struct {
		key  string
		want float64
	}{
		{StatKills, 7},
		{StatWin, 1},
		{StatKillParticipation, 0.64},
		{StatDamagePerMinute, 0},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := StatValue(m, tt.key); got != tt.want {
			t.Errorf("StatValue(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}

	m.Win = false
	if StatValue(m, StatWin) != 0 {
		t.Error("a loss reads as 0")
	}
}
