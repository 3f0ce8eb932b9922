package boundary

import "strings"

// Engine describes the client rendering engine that produced an event.
type Engine struct {
	Name      string
	noReorder bool
}

// SupportsReorder reports whether the engine can change the paint order of
// an already drawn feature.
func (e Engine) SupportsReorder() bool {
	return !e.noReorder
}

// EngineFromUserAgent classifies a User-Agent header. Legacy Internet
// Explorer, EdgeHTML and Presto Opera do not support raising a feature.
func EngineFromUserAgent(ua string) Engine {
	switch {
	case strings.Contains(ua, "MSIE "), strings.Contains(ua, "Trident/"):
		return Engine{Name: "ie", noReorder: true}
	case strings.Contains(ua, "Edge/"):
		return Engine{Name: "edge", noReorder: true}
	case strings.Contains(ua, "Presto/"), strings.HasPrefix(ua, "Opera/"):
		return Engine{Name: "opera", noReorder: true}
	}
	return Engine{Name: "standard"}
}
