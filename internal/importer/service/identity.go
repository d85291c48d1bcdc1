package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Supported delivery date layouts.
const (
	LayoutFull  = "dd/MM/yyyy"
	LayoutShort = "dd/MM/yy"
	LayoutThree = "dd/MM/yyy"
)

var rxDateToken = regexp.MustCompile(`\d{8}`)

// ValidDateLayout reports whether layout is one of the supported layouts.
func ValidDateLayout(layout string) bool {
	switch layout {
	case LayoutFull, LayoutShort, LayoutThree:
		return true
	}
	return false
}

// DeriveID returns the persisted identity of a row: sha1 hex of
// "delivery|portal|ref". When any of the three is blank the sheet name and the
// row index are appended so that incomplete rows never collide.
// row is the 0-based position below the header row.
func DeriveID(deliveryDate, portal, ref, sheet string, row int) string {
	d := strings.TrimSpace(deliveryDate)
	p := strings.TrimSpace(portal)
	r := strings.TrimSpace(ref)
	key := d + "|" + p + "|" + r
	if d == "" || p == "" || r == "" {
		key = fmt.Sprintf("%s|%s|row:%d", key, strings.TrimSpace(sheet), row)
	}
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// DeliveryDateFromSheet extracts the first 8-digit token of a sheet name.
// The token is read as ddMMyyyy, or as yyyyMMdd when only that reading is a
// real date ("20241011" → 11/10/2024). Returns "" when there is no token.
func DeliveryDateFromSheet(sheet, layout string) string {
	tok := rxDateToken.FindString(sheet)
	if tok == "" {
		return ""
	}
	dd, mm, yyyy := tok[0:2], tok[2:4], tok[4:8]
	if !realDate(dd, mm, yyyy) && realDate(tok[6:8], tok[4:6], tok[0:4]) {
		dd, mm, yyyy = tok[6:8], tok[4:6], tok[0:4]
	}
	switch layout {
	case LayoutShort:
		return dd + "/" + mm + "/" + yyyy[2:]
	case LayoutThree:
		return dd + "/" + mm + "/" + yyyy[1:]
	default:
		return dd + "/" + mm + "/" + yyyy
	}
}

func realDate(dd, mm, yyyy string) bool {
	y, _ := strconv.Atoi(yyyy)
	if y < 1900 {
		return false
	}
	_, err := time.Parse("02012006", dd+mm+yyyy)
	return err == nil
}
