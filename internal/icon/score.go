package icon

import "strings"

// MaxScore is the best possible candidate score; finding one ends the scan
const MaxScore = 5

// sizeScores ranks fixed-size theme directories, largest first
var sizeScores = []struct {
	marker string
	score  int
}{
	{"512x512", 4},
	{"256x256", 3},
	{"128x128", 2},
	{"64x64", 1},
}

// Score rates how desirable an icon path is. Vector images win, then larger
// raster sizes. Anything else scores zero.
func Score(path string) int {
	if strings.HasSuffix(path, ".svg") || hasSegment(path, "scalable") {
		return MaxScore
	}

	for _, s := range sizeScores {
		if strings.Contains(path, s.marker) {
			return s.score
		}
	}

	return 0
}

func hasSegment(path, segment string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
