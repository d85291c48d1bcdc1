package handler

import (
	"fmt"
	"strconv"
	"strings"
)

func atoi(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on", "sim":
		return true
	case "0", "false", "no", "n", "off", "nao", "não":
		return false
	default:
		return def
	}
}

func errUnsupportedLayout(layout string) error {
	return fmt.Errorf("unsupported dateFmt %q (want dd/MM/yyyy, dd/MM/yy or dd/MM/yyy)", layout)
}
