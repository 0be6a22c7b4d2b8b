package libdiff

import (
	"strconv"
	"strings"
)

func fieldPath(parent, key string) string {
	if key != "" && strings.IndexAny(key, "'.$[] ") == -1 {
		return parent + "." + key
	}
	return parent + "['" + strings.ReplaceAll(key, "'", "\\'") + "']"
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
