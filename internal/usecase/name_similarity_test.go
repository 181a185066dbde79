package usecase

import "testing"

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and trims", in: "  Tom Brady  ", want: "tom brady"},
		{name: "drops periods", in: "T.J. Watt", want: "tj watt"},
		{name: "drops apostrophes", in: "D'Andre Swift", want: "dandre swift"},
		{name: "hyphen splits tokens", in: "Clyde Edwards-Helaire", want: "clyde edwards helaire"},
		{name: "strips generational suffix", in: "Odell Beckham Jr.", want: "odell beckham"},
		{name: "strips stacked suffixes", in: "Robert Griffin III", want: "robert griffin"},
		{name: "collapses whitespace", in: "Aaron   Rodgers", want: "aaron rodgers"},
		{name: "empty input", in: "   ", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeName(tc.in); got != tc.want {
				t.Fatalf("normalizeName(%q)=%q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "brady", b: "", want: 5},
		{a: "brady", b: "brady", want: 0},
		{a: "t brady", b: "tom brady", want: 2},
		{a: "kitten", b: "sitting", want: 3},
	}

	for _, tc := range tests {
		if got := levenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("levenshteinDistance(%q, %q)=%d want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEditSimilarity_Bounds(t *testing.T) {
	t.Parallel()

	if got := editSimilarity("", ""); got != 1 {
		t.Fatalf("empty strings should be identical, got %f", got)
	}
	if got := editSimilarity("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint strings should score 0, got %f", got)
	}
	got := editSimilarity("t brady", "tom brady")
	if got <= 0.7 || got >= 0.8 {
		t.Fatalf("abbreviated name similarity out of expected range: %f", got)
	}
}

func TestSoundex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "robert", want: "R163"},
		{in: "rupert", want: "R163"},
		{in: "brady", want: "B630"},
		{in: "brees", want: "B620"},
		{in: "breese", want: "B620"},
		{in: "t", want: "T000"},
	}

	for _, tc := range tests {
		if got := soundex(tc.in); got != tc.want {
			t.Fatalf("soundex(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestPhoneticEqual(t *testing.T) {
	t.Parallel()

	if !phoneticEqual("jon smith", "john smith") {
		t.Fatal("jon/john smith should be phonetically equal")
	}
	if phoneticEqual("t brady", "tom brady") {
		t.Fatal("an initial must not be phonetically equal to a full first name")
	}
	if phoneticEqual("tom brady", "tom") {
		t.Fatal("token count mismatch must not be phonetically equal")
	}
}

func TestExpandNicknames(t *testing.T) {
	t.Parallel()

	if got := expandNicknames("mike evans"); got != "michael evans" {
		t.Fatalf("expandNicknames(mike evans)=%q", got)
	}
	if got := expandNicknames("puka nacua"); got != "puka nacua" {
		t.Fatalf("unknown first name must pass through, got %q", got)
	}
}
