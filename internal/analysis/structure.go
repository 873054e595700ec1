package analysis

// canonicalSections are the section headers an ATS expects to find.
var canonicalSections = []string{"experience", "education", "skills"}

// MissingSections reports which canonical sections never appear in the
// document. Presence requires a token whose lowercased text exactly equals
// the section name; multi-word or pluralized mentions are not recognized.
// That weak single-token match is a known heuristic limitation kept on
// purpose; callers and tests rely on it.
func MissingSections(text string) []string {
	present := UniqueTokens(text)

	var missing []string
	for _, section := range canonicalSections {
		if _, ok := present[section]; !ok {
			missing = append(missing, section)
		}
	}
	return missing
}
