package core

import (
	"strings"
	"time"
)

// rawDateLayout is the only textual date format the normalizer accepts.
// Bank exports in scope always render timestamps this way; anything else
// marks the row invalid rather than guessing.
const rawDateLayout = "2006-01-02 15:04:05"

// displayDateLayout is the canonical DD/MM/YY presentation used in the
// ledger, the detail sheet and the text export.
const displayDateLayout = "02/01/06"

// NormalizeDate converts a raw date cell into its DD/MM/YY display form.
// It accepts time.Time values and strings matching rawDateLayout; a nil,
// empty or unparseable value yields ok=false. It never errors or panics:
// invalid dates are a skip condition, not a failure.
func NormalizeDate(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format(displayDateLayout), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", false
		}
		t, err := time.Parse(rawDateLayout, s)
		if err != nil {
			return "", false
		}
		return t.Format(displayDateLayout), true
	default:
		return "", false
	}
}
