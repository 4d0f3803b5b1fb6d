package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Coordinate text format: entries separated by ';', each entry an "x,y"
// pair. Whitespace (including newlines) around entries and numbers is
// ignored, as are empty entries, so "1,2; 3,4;" parses to two points.
const (
	entrySeparator = ";"
	pairSeparator  = ","
)

// ParseCoordinates parses the coordinate text format.
func ParseCoordinates(text string) (Configuration, error) {
	var out Configuration
	for i, entry := range strings.Split(text, entrySeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, pairSeparator)
		if len(parts) != 2 {
			return nil, fmt.Errorf("entry %d %q: want x,y: %w", i, entry, ErrMalformedCoordinates)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("entry %d %q: x: %w", i, entry, ErrMalformedCoordinates)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("entry %d %q: y: %w", i, entry, ErrMalformedCoordinates)
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}

// FormatCoordinates renders c in the coordinate text format.
func FormatCoordinates(c Configuration) string {
	var sb strings.Builder
	for i, p := range c {
		if i > 0 {
			sb.WriteString(entrySeparator)
		}
		sb.WriteString(strconv.Itoa(p.X))
		sb.WriteString(pairSeparator)
		sb.WriteString(strconv.Itoa(p.Y))
	}
	return sb.String()
}

// LoadCoordinates reads a coordinate text file.
func LoadCoordinates(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCoordinates(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// SaveCoordinates writes c to path in the coordinate text format.
func SaveCoordinates(path string, c Configuration) error {
	return os.WriteFile(path, []byte(FormatCoordinates(c)+"\n"), 0644)
}
