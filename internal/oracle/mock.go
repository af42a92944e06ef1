package oracle

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
)

var commentTemplates = []string{
	"Strong idea with a well-matched stack. The implementation path is concrete and the feasibility is high.",
	"Creative idea, but the technical execution has gaps. A more deliberate technology selection would help.",
	"Technically deep with a high implementation ceiling. The attention to user experience rounds it out nicely.",
	"Shows real understanding of the theme and an original angle. Idea and technology are well balanced.",
	"Very practical proposal. The stack fits and this could plausibly ship as a real service.",
}

// MockJudge is the keyless stand-in for the LLM judge. It is deterministic
// for a given request so tests and offline play are reproducible.
type MockJudge struct{}

func NewMockJudge() *MockJudge { return &MockJudge{} }

func (m *MockJudge) Evaluate(_ context.Context, req Request) (Result, error) {
	rnd := rand.New(rand.NewSource(int64(seedFor(req))))

	breakdown := map[string]int{
		"originality": 12 + rnd.Intn(8),
		"tech_fit":    12 + rnd.Intn(8),
		"theme_fit":   12 + rnd.Intn(8),
	}
	breakdown["demo"] = demoScore(req.TechLevels)

	total := 0
	for _, v := range breakdown {
		total += v
	}
	return Result{
		TotalScore:      ClampScore(total),
		Breakdown:       breakdown,
		Commentary:      commentTemplates[rnd.Intn(len(commentTemplates))],
		IllustrationURL: fmt.Sprintf("https://picsum.photos/seed/%d/400/300", seedFor(req)),
	}, nil
}

// demoScore rewards high proficiency: any maxed card is a perfect demo,
// otherwise the level sum scaled and clipped to [10,30].
func demoScore(levels map[string]int) int {
	sum := 0
	for _, lvl := range levels {
		if lvl >= 5 {
			return 30
		}
		sum += lvl
	}
	score := sum * 6
	if score < 10 {
		return 10
	}
	if score > 30 {
		return 30
	}
	return score
}

func seedFor(req Request) uint32 {
	names := append([]string(nil), req.TechNames...)
	sort.Strings(names)
	h := fnv.New32a()
	_, _ = h.Write([]byte(req.Theme))
	_, _ = h.Write([]byte(req.Direction))
	_, _ = h.Write([]byte(req.Pitch))
	_, _ = h.Write([]byte(strings.Join(names, ",")))
	return h.Sum32()
}
