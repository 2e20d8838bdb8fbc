// Package lookup resolves a free-form name pattern to athletes.
package lookup

import (
	"regexp"

	"github.com/okian/draftkit/internal/domain/model"
)

// Kind tags the outcome of a resolution.
type Kind int

// Resolution kinds.
const (
	KindNotFound Kind = iota
	KindUnique
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnique:
		return "unique"
	case KindAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Result is a tagged union: Athlete is set only for KindUnique, Matches only
// for KindAmbiguous.
type Result struct {
	Kind    Kind
	Athlete model.Athlete
	Matches []model.Athlete
}

// Resolve matches pattern case-insensitively against every candidate name.
// The pattern is treated as a regular expression; if it does not compile it
// is matched literally. Resolve never picks among several matches.
func Resolve(pattern string, candidates []model.Athlete) Result {
	re := compile(pattern)

	var matches []model.Athlete
	for _, a := range candidates {
		if re.MatchString(a.Name) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return Result{Kind: KindNotFound}
	case 1:
		return Result{Kind: KindUnique, Athlete: matches[0]}
	default:
		return Result{Kind: KindAmbiguous, Matches: matches}
	}
}

func compile(pattern string) *regexp.Regexp {
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		return re
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
}
