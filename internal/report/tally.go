package report

import "sort"

// NullMarker is printed in place of values the API reported as null
const NullMarker = "null"

// LanguageShare is one entry of the language section
type LanguageShare struct {
	Language string
	Count    int
	Percent  float64
}

// StarEntry is one entry of the starred section
type StarEntry struct {
	Name  string
	Stars int
}

// StarTally maps repository names to star counts and remembers the order in
// which names were first recorded.
type StarTally struct {
	order []string
	stars map[string]int
}

// NewStarTally returns an empty tally
func NewStarTally() *StarTally {
	return &StarTally{stars: make(map[string]int)}
}

// Record sets the star count of name. A name seen before keeps its position.
func (t *StarTally) Record(name string, stars int) {
	if _, ok := t.stars[name]; !ok {
		t.order = append(t.order, name)
	}
	t.stars[name] = stars
}

// Len returns the number of distinct names
func (t *StarTally) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Stars returns the count recorded for name
func (t *StarTally) Stars(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	n, ok := t.stars[name]
	return n, ok
}

// Entries returns the tally in insertion order
func (t *StarTally) Entries() []StarEntry {
	if t == nil {
		return nil
	}
	entries := make([]StarEntry, 0, len(t.order))
	for _, name := range t.order {
		entries = append(entries, StarEntry{Name: name, Stars: t.stars[name]})
	}
	return entries
}

// TopLanguages counts the distinct values of languages and returns the n most
// frequent, ties in order of first occurrence. Percentages are taken against
// total and left unrounded.
func TopLanguages(languages []string, n, total int) []LanguageShare {
	if n <= 0 || total <= 0 || len(languages) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, lang := range languages {
		if _, ok := counts[lang]; !ok {
			order = append(order, lang)
		}
		counts[lang]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}

	shares := make([]LanguageShare, 0, len(order))
	for _, lang := range order {
		shares = append(shares, LanguageShare{
			Language: lang,
			Count:    counts[lang],
			Percent:  float64(counts[lang]) / float64(total) * 100,
		})
	}
	return shares
}

// TopStarred returns the n entries with the most stars, ties in insertion order
func TopStarred(stars *StarTally, n int) []StarEntry {
	if n <= 0 {
		return nil
	}

	entries := stars.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Stars > entries[j].Stars
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
