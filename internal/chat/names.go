package chat

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/stitts-dev/efootball-stats/internal/analytics"
	"github.com/stitts-dev/efootball-stats/internal/models"
)

// minSurnameLen keeps short tokens such as "jr" from matching on their own.
const minSurnameLen = 4

// Fold lower-cases s and strips combining marks, so "Mbappé" folds to "mbappe".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// words splits folded text on anything that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// indexOf returns the word offset of needle inside haystack, or -1.
func indexOf(haystack, needle []string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, w := range needle {
			if haystack[i+j] != w {
				continue outer
			}
		}
		return i
	}
	return -1
}

type nameEntry struct {
	name   string
	folded string
	words  []string
}

// nameIndex resolves free text to player names. A name with several cards
// resolves to its best card.
type nameIndex struct {
	entries []nameEntry
	cards   map[string][]models.PlayerCard
}

func newNameIndex(players []models.PlayerCard) *nameIndex {
	names, groups := analytics.GroupByName(players)
	idx := &nameIndex{cards: groups}
	for _, n := range names {
		f := Fold(n)
		idx.entries = append(idx.entries, nameEntry{name: n, folded: f, words: words(f)})
	}
	return idx
}

type mention struct {
	name       string
	start, end int
	order      int
	surname    bool
}

// Mentions returns the distinct names referenced in input, in the order they
// appear. A full name matches as a phrase; failing that, a surname (or the
// first word, when the surname is too short) of at least minSurnameLen
// letters matches on its own. A mention nested inside a
// longer one is dropped, as is a surname hit on the same words as a full name.
func (idx *nameIndex) Mentions(input string) []string {
	in := words(Fold(input))
	var found []mention
	for order, e := range idx.entries {
		if i := indexOf(in, e.words); i >= 0 {
			found = append(found, mention{name: e.name, start: i, end: i + len(e.words), order: order})
			continue
		}
		if len(e.words) < 2 {
			continue
		}
		short, ok := shortName(e.words)
		if !ok {
			continue
		}
		if i := indexOf(in, []string{short}); i >= 0 {
			found = append(found, mention{name: e.name, start: i, end: i + 1, order: order, surname: true})
		}
	}

	kept := found[:0:0]
	for _, m := range found {
		nested := false
		for _, o := range found {
			if covers(o, m) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].start != kept[j].start {
			return kept[i].start < kept[j].start
		}
		return kept[i].order < kept[j].order
	})

	out := make([]string, len(kept))
	for i, m := range kept {
		out[i] = m.name
	}
	return out
}

// shortName picks the single word a player goes by: the surname, or the
// first word when the surname is a suffix such as "jr".
func shortName(ws []string) (string, bool) {
	if last := ws[len(ws)-1]; len([]rune(last)) >= minSurnameLen {
		return last, true
	}
	if first := ws[0]; len([]rune(first)) >= minSurnameLen {
		return first, true
	}
	return "", false
}

// covers reports whether o shadows m: o spans more words around m, or o is a
// full-name match over the same words m only matched as a surname.
func covers(o, m mention) bool {
	if o.start > m.start || m.end > o.end {
		return false
	}
	if o.end-o.start > m.end-m.start {
		return true
	}
	return m.surname && !o.surname
}

// Find resolves a single player: the longest mentioned name, or else the
// first name that contains the whole input (at least three characters).
func (idx *nameIndex) Find(input string) (string, bool) {
	if mentions := idx.Mentions(input); len(mentions) > 0 {
		best := mentions[0]
		for _, n := range mentions[1:] {
			if len(n) > len(best) {
				best = n
			}
		}
		return best, true
	}
	q := strings.Join(words(Fold(input)), " ")
	if len([]rune(q)) < 3 {
		return "", false
	}
	for _, e := range idx.entries {
		if strings.Contains(e.folded, q) {
			return e.name, true
		}
	}
	return "", false
}

// Best returns the best card for name.
func (idx *nameIndex) Best(name string) (models.PlayerCard, bool) {
	return analytics.BestCard(idx.cards[name])
}

// Cards returns every card for name.
func (idx *nameIndex) Cards(name string) []models.PlayerCard {
	return idx.cards[name]
}
