package output

import (
	"strings"

	"repolint/internal/checklist"
)

type sectionStats struct {
	Section checklist.Section
	Pass    int
	Fail    int
	Results []checklist.Result
}

// Percent is the share of passing checks, rounded down.
func (s *sectionStats) Percent() int {
	total := s.Pass + s.Fail
	if total == 0 {
		return 0
	}
	return s.Pass * 100 / total
}

// computeSectionStats groups results by section, in catalog section order.
// Sections without results are omitted.
func computeSectionStats(results []checklist.Result) []*sectionStats {
	bySection := make(map[checklist.Section]*sectionStats)
	for _, r := range results {
		st, ok := bySection[r.Section]
		if !ok {
			st = &sectionStats{Section: r.Section}
			bySection[r.Section] = st
		}
		st.Results = append(st.Results, r)
		if r.Status == checklist.StatusPass {
			st.Pass++
		} else {
			st.Fail++
		}
	}

	var out []*sectionStats
	for _, sec := range checklist.Sections() {
		if st, ok := bySection[sec]; ok {
			out = append(out, st)
			delete(bySection, sec)
		}
	}
	// Unknown sections keep a stable position at the end.
	for _, r := range results {
		if st, ok := bySection[r.Section]; ok {
			out = append(out, st)
			delete(bySection, r.Section)
		}
	}
	return out
}

func failingResults(results []checklist.Result) []checklist.Result {
	var out []checklist.Result
	for _, r := range results {
		if r.Status != checklist.StatusPass {
			out = append(out, r)
		}
	}
	return out
}

func sectionTitle(s checklist.Section) string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func checkTitle(id string) string {
	if it, ok := checklist.Lookup(id); ok {
		return it.Title
	}
	return id
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
