package fuzzy

import (
	"reflect"
	"testing"
)

func TestDistanceProperties(t *testing.T) {
	strs := []string{"", "a", "alamofire", "Alamofire", "kingfisher", "snapkit", "snap kit"}

	for _, s := range strs {
		if d := Distance(s, s); d != 0 {
			t.Errorf("Distance(%q, %q) = %d, want 0", s, s, d)
		}
	}

	for _, a := range strs {
		for _, b := range strs {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance not symmetric for %q, %q", a, b)
			}
		}
	}

	for _, a := range strs {
		for _, b := range strs {
			for _, c := range strs {
				if Distance(a, c) > Distance(a, b)+Distance(b, c) {
					t.Errorf("triangle inequality violated for %q, %q, %q", a, b, c)
				}
			}
		}
	}
}

func TestDistanceCaseInsensitive(t *testing.T) {
	if d := Distance("Alamofire", "ALAMOFIRE"); d != 0 {
		t.Errorf("Distance should ignore case, got %d", d)
	}
}

func TestBestMatchesEmptyCandidates(t *testing.T) {
	if got := BestMatches("anything", nil); len(got) != 0 {
		t.Errorf("BestMatches with no candidates = %v, want empty", got)
	}
}

func TestBestMatchesExactFirst(t *testing.T) {
	got := BestMatches("SnapKit", []string{"Kingfisher", "SnapKit", "SnapshotKit"})
	if len(got) == 0 || got[0] != "SnapKit" {
		t.Errorf("BestMatches = %v, want SnapKit first", got)
	}
}

func TestBestMatchesHalfLengthCap(t *testing.T) {
	// "cat" vs "dog": distance 3 > len("cat")/2 and no shared prefix.
	if got := BestMatches("cat", []string{"dog"}); len(got) != 0 {
		t.Errorf("unrelated short string matched: %v", got)
	}
}

func TestBestMatchesPrefixRescue(t *testing.T) {
	// Long related name: distance exceeds the half-length cap but the shared
	// prefix keeps it in.
	got := BestMatches("Kingfish", []string{"KingfisherWebP"})
	if !reflect.DeepEqual(got, []string{"KingfisherWebP"}) {
		t.Errorf("prefix rule did not rescue candidate: %v", got)
	}
}

func TestBestMatchesStableTies(t *testing.T) {
	got := BestMatches("abc", []string{"abd", "abe", "abf"})
	want := []string{"abd", "abe", "abf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie order not stable: %v, want %v", got, want)
	}
}

func TestBestMatchesEmptyQuery(t *testing.T) {
	// Distance from "" to any candidate equals its length; only empty
	// candidates can pass the half-length rule and the prefix rule never
	// applies.
	if got := BestMatches("", []string{"alpha", "beta"}); len(got) != 0 {
		t.Errorf("empty query matched: %v", got)
	}
}
