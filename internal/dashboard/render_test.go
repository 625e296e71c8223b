package dashboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderTrendSVG(t *testing.T) {
	trend := MapTrend(matchesNewestFirst(4, alwaysWin), SelectionOf(StatKills, StatKDA))

	var buf bytes.Buffer
	if err := RenderTrendSVG(&buf, trend); err != nil {
		t.Fatalf("RenderTrendSVG: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") {
		t.Fatalf("expected svg output, got %.40q", buf.String())
	}
	if !strings.Contains(buf.String(), "Match 1") {
		t.Error("x axis should carry match labels")
	}
}

func TestRenderComparisonSVG(t *testing.T) {
	cmp := MapComparison(matchesNewestFirst(3, func(i int) bool { return i%2 == 0 }), NewSelection())

	var buf bytes.Buffer
	if err := RenderComparisonSVG(&buf, cmp); err != nil {
		t.Fatalf("RenderComparisonSVG: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") {
		t.Fatalf("expected svg output, got %.40q", buf.String())
	}
}

func TestRenderNothing(t *testing.T) {
	matches := matchesNewestFirst(3, alwaysWin)
	sel := SelectionOf(StatWin)

	var buf bytes.Buffer
	if err := RenderTrendSVG(&buf, MapTrend(matches, sel)); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("placeholder trend: got %v", err)
	}
	if err := RenderComparisonSVG(&buf, MapComparison(matches, sel)); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("hidden comparison: got %v", err)
	}
	if err := RenderTrendSVG(&buf, MapTrend(nil, NewSelection())); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("no matches: got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written")
	}
}

func TestRenderTrendSVGSingleMatch(t *testing.T) {
	trend := MapTrend(matchesNewestFirst(1, alwaysWin), SelectionOf(StatKills, StatKillParticipation, StatWin))

	var buf bytes.Buffer
	if err := RenderTrendSVG(&buf, trend); err != nil {
		t.Fatalf("RenderTrendSVG with one match: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") || !strings.Contains(buf.String(), "Match 1") {
		t.Errorf("expected an svg with the match tick, got %.60q", buf.String())
	}

	buf.Reset()
	if err := RenderComparisonSVG(&buf, MapComparison(matchesNewestFirst(1, alwaysWin), NewSelection())); err != nil {
		t.Fatalf("RenderComparisonSVG with one match: %v", err)
	}
}
