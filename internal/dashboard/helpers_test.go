package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"gametrack/internal/domain"

	"github.com/pmezard/go-difflib/difflib"
)

// matchesNewestFirst builds n records where record i (0 = newest) has
// MatchID "NA1_<n-i>", so the oldest is NA1_1.
func matchesNewestFirst(n int, win func(i int) bool) []domain.PlayerMatchStats {
	out := make([]domain.PlayerMatchStats, n)
	for i := range out {
		id := n - i
		out[i] = domain.PlayerMatchStats{
			MatchID:      fmt.Sprintf("NA1_%d", id),
			ChampionName: fmt.Sprintf("Champ%d", id),
			Kills:        id,
			Deaths:       id % 3,
			Assists:      id * 2,
			Win:          win(i),
			KDA:          float64(id),
		}
	}
	return out
}

func alwaysWin(int) bool { return true }

func assertLines(t *testing.T, want, got []string) {
	t.Helper()
	w := strings.Join(want, "\n") + "\n"
	g := strings.Join(got, "\n") + "\n"
	if w == g {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(w),
		B:        difflib.SplitLines(g),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Errorf("mismatch:\n%s", diff)
}
