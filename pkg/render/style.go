package render

import (
	"bytes"
	"encoding/xml"
)

// Stroke styles.
const (
	RoadColor      = "black"
	RoadWidth      = 1
	HighlightColor = "red"
	HighlightWidth = 2
	DebugColor     = "blue"
)

func strokeOf(highlighted bool) (string, int) {
	if highlighted {
		return HighlightColor, HighlightWidth
	}
	return RoadColor, RoadWidth
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
