package symtab

import "github.com/hbollon/go-edlib"

// Suggest returns the closest visible name to want, using a
// Damerau-Levenshtein edit-distance match (grounded on
// standardbeagle-lci's use of go-edlib for its own fuzzy search). It
// returns "" if candidates is empty or nothing is close enough to be a
// plausible typo (edit distance more than half the word's length).
//
// This is only ever called once the cycle detector has confirmed an
// identifier truly never resolves (spec.md §9's speculative-parsing
// note): attaching suggestions to a merely-not-yet-visited dependency
// would be misleading.
func Suggest(want string, candidates []string) string {
	if len(candidates) == 0 || want == "" {
		return ""
	}
	match, err := edlib.FuzzySearch(want, candidates, edlib.DamerauLevenshtein)
	if err != nil || match == "" {
		return ""
	}
	dist, err := edlib.StringsSimilarity(want, match, edlib.DamerauLevenshtein)
	if err != nil {
		return ""
	}
	maxLen := len(want)
	if len(match) > maxLen {
		maxLen = len(match)
	}
	if maxLen == 0 {
		return ""
	}
	// dist is a similarity ratio in [0,1]; require at least half-similar.
	if dist < 0.5 {
		return ""
	}
	return match
}
