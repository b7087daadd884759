package authz

import "strings"

// MatchRule finds the default rule governing actionKey.
// Priority: exact literal match, then parameterized-path match (":x" segments
// match any single non-slash segment), then longest prefix among literal
// rules. The root rule never prefix-matches, otherwise every unknown key
// would fall through to it.
func MatchRule(rules []RouteRule, actionKey string) (RouteRule, bool) {
	for _, r := range rules {
		if r.Path == actionKey {
			return r, true
		}
	}

	for _, r := range rules {
		if strings.Contains(r.Path, ":") && matchTemplate(r.Path, actionKey) {
			return r, true
		}
	}

	best := -1
	bestLen := 0
	for i, r := range rules {
		if strings.Contains(r.Path, ":") || r.Path == PathHome {
			continue
		}
		if strings.HasPrefix(actionKey, r.Path+"/") && len(r.Path) > bestLen {
			best = i
			bestLen = len(r.Path)
		}
	}
	if best >= 0 {
		return rules[best], true
	}

	return RouteRule{}, false
}

// matchTemplate reports whether path matches pattern segment by segment.
func matchTemplate(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ts := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if ts[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != ts[i] {
			return false
		}
	}
	return true
}
