package generator

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyResponse is returned when the model answers with nothing but whitespace.
var ErrEmptyResponse = errors.New("model returned an empty response")

// PostProcess turns the raw completion into a Result.
func PostProcess(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		return Result{}, ErrEmptyResponse
	}
	return Result{
		Titles: FormatTitles(raw),
		Raw:    raw,
	}, nil
}

// FormatTitles keeps the non-blank lines of raw and strips the enumeration marker
// matching each line's position ("1.", "1)") or a leading "- ". Numbering that
// does not match the position is left in place.
func FormatTitles(raw string) []string {
	var titles []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		titles = append(titles, stripMarker(line, len(titles)+1))
	}
	return titles
}

func stripMarker(line string, pos int) string {
	n := strconv.Itoa(pos)
	for _, prefix := range []string{n + ".", n + ")", "- "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}
