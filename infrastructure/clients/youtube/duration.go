package youtube

import (
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 duration such as "PT1H2M30S" into
// total seconds. Absent groups default to zero; anything unparseable yields 0.
func ParseISODuration(s string) int64 {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours := parseGroup(m[1])
	minutes := parseGroup(m[2])
	seconds := parseGroup(m[3])
	return hours*3600 + minutes*60 + seconds
}

func parseGroup(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
