package usecase

import (
	"strings"
	"unicode"
)

// nicknameGroups maps common first-name variants to a shared canonical form.
var nicknameGroups = map[string]string{
	"tom":     "thomas",
	"tommy":   "thomas",
	"thomas":  "thomas",
	"mike":    "michael",
	"michael": "michael",
	"matt":    "matthew",
	"matthew": "matthew",
	"rob":     "robert",
	"bob":     "robert",
	"robert":  "robert",
	"bill":    "william",
	"will":    "william",
	"william": "william",
	"jim":     "james",
	"jimmy":   "james",
	"james":   "james",
	"joe":     "joseph",
	"joey":    "joseph",
	"joseph":  "joseph",
	"dan":     "daniel",
	"danny":   "daniel",
	"daniel":  "daniel",
	"dave":    "david",
	"david":   "david",
	"chris":   "christopher",
	"steve":   "stephen",
	"stephen": "stephen",
	"steven":  "stephen",
	"tony":    "anthony",
	"anthony": "anthony",
	"nick":    "nicholas",
	"zach":    "zachary",
	"zack":    "zachary",
	"zachary": "zachary",
	"alex":    "alexander",
	"ben":     "benjamin",
	"cam":     "cameron",
	"cameron": "cameron",
	"josh":    "joshua",
	"joshua":  "joshua",
}

var nameSuffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

// normalizeName lowercases, strips punctuation, drops generational suffixes,
// and collapses whitespace. Apostrophes and periods vanish entirely so
// "D'Andre" and "T.J." keep their tokens intact; hyphens split tokens.
func normalizeName(name string) string {
	var buf strings.Builder
	buf.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			buf.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			buf.WriteRune(' ')
		}
	}

	tokens := strings.Fields(buf.String())
	for len(tokens) > 1 {
		if _, ok := nameSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// expandNicknames rewrites known first-name variants to their canonical form.
func expandNicknames(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return normalized
	}
	if canonical, ok := nicknameGroups[tokens[0]]; ok {
		tokens[0] = canonical
	}
	return strings.Join(tokens, " ")
}

// levenshteinDistance is the edit distance between two strings, by rune.
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// editSimilarity is 1 minus the normalized edit distance, in [0,1].
func editSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

var soundexCodes = map[rune]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// soundex computes the classic four-character Soundex code of a single token.
func soundex(token string) string {
	token = strings.ToLower(token)
	var first rune
	for _, r := range token {
		if r >= 'a' && r <= 'z' {
			first = r
			break
		}
	}
	if first == 0 {
		return ""
	}

	code := []byte{byte(unicode.ToUpper(first))}
	lastDigit := soundexCodes[first]
	seenFirst := false
	for _, r := range token {
		if r < 'a' || r > 'z' {
			continue
		}
		if !seenFirst {
			seenFirst = true
			continue
		}
		digit, ok := soundexCodes[r]
		if !ok {
			if r != 'h' && r != 'w' {
				lastDigit = 0
			}
			continue
		}
		if digit == lastDigit {
			continue
		}
		code = append(code, digit)
		lastDigit = digit
		if len(code) == 4 {
			break
		}
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// phoneticEqual reports whether two normalized names sound alike: same token
// count and every token pair shares a Soundex code. Initials never qualify.
func phoneticEqual(a, b string) bool {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensA) != len(tokensB) {
		return false
	}
	for i := range tokensA {
		if soundex(tokensA[i]) != soundex(tokensB[i]) {
			return false
		}
	}
	return true
}
