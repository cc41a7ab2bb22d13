package commpost

import (
	"math"
	"strconv"
	"strings"
)

// VoteUnit is the unit word that follows the total in a poll's vote info.
const VoteUnit = "คะแนน"

// magnitudes are the shorthand suffixes used in count displays, e.g. "1.5พัน".
var magnitudes = []struct {
	suffix string
	factor float64
}{
	{"พัน", 1_000},
	{"หมื่น", 10_000},
	{"แสน", 100_000},
}

var separators = strings.NewReplacer(",", "", " ", "", "\u00a0", "")

// ParseCount parses a displayed like, vote or comment count.
// Blank input is zero. Thousands separators are ignored, and a magnitude
// suffix scales the numeral before it, which may be fractional. The result
// is truncated to an integer.
func ParseCount(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	s = separators.Replace(s)

	for _, m := range magnitudes {
		num, ok := strings.CutSuffix(s, m.suffix)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0, Errorf(ELOCALE, "invalid count %q", text)
		}
		v := f * m.factor
		if v > math.MaxInt32 {
			return 0, Errorf(ELOCALE, "count %q out of range", text)
		}
		return int(v), nil
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, Errorf(ELOCALE, "invalid count %q", text)
	}
	return int(n), nil
}
