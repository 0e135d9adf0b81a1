package tagger

import "strings"

const minStem = 3

// nounLemma reduces a regular plural to its singular.
func nounLemma(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "sses"),
		strings.HasSuffix(w, "ches"),
		strings.HasSuffix(w, "shes"),
		strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "zes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"),
		strings.HasSuffix(w, "us"),
		strings.HasSuffix(w, "is"):
		return w
	case len(w) > minStem && strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

// verbCandidates lists plausible base forms of an inflected verb, most
// likely first. The word itself is always the last candidate.
func verbCandidates(w string) []string {
	var out []string
	add := func(s string) {
		if len(s) >= minStem {
			out = append(out, s)
		}
	}

	switch {
	case strings.HasSuffix(w, "ies") || strings.HasSuffix(w, "ied"):
		add(w[:len(w)-3] + "y")
	case strings.HasSuffix(w, "es"):
		add(w[:len(w)-1])
		add(w[:len(w)-2])
	case strings.HasSuffix(w, "ss"):
	case strings.HasSuffix(w, "s"):
		add(w[:len(w)-1])
	case strings.HasSuffix(w, "ed"):
		add(w[:len(w)-1])
		add(w[:len(w)-2])
		add(undouble(w[:len(w)-2]))
	case strings.HasSuffix(w, "ing"):
		base := w[:len(w)-3]
		add(base)
		add(base + "e")
		add(undouble(base))
	}
	return append(out, w)
}

// guessVerbLemma is the fallback when no candidate is a known verb.
func guessVerbLemma(w string) string {
	var base string
	switch {
	case strings.HasSuffix(w, "ied"), strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ed"):
		base = w[:len(w)-2]
	case strings.HasSuffix(w, "ing"):
		base = w[:len(w)-3]
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		base = w[:len(w)-1]
	default:
		return w
	}
	if len(base) < minStem {
		return w
	}
	if u := undouble(base); u != base {
		return u
	}
	for _, suffix := range []string{"at", "bl", "iz"} {
		if strings.HasSuffix(base, suffix) {
			return base + "e"
		}
	}
	return base
}

// undouble drops a doubled final consonant (stopp -> stop), keeping ll, ss, zz.
func undouble(s string) string {
	n := len(s)
	if n < 2 || s[n-1] != s[n-2] {
		return s
	}
	switch s[n-1] {
	case 'a', 'e', 'i', 'o', 'u', 'l', 's', 'z':
		return s
	}
	return s[:n-1]
}
