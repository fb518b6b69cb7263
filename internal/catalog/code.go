// Package catalog mints and checks product codes of the form BOX-CCC-NNNN,
// where CCC is the category code and NNNN a sequence shared by every
// category.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wuasibox/box-register/internal/apperr"
	"github.com/wuasibox/box-register/internal/model"
)

const (
	codePrefix          = "BOX"
	UnknownCategoryCode = "999"
	maxSequence         = 9999
)

var categoryCodes = map[model.Category]string{
	model.CategoryClearTape:         "100",
	model.CategoryEnvoplast:         "200",
	model.CategoryInsulatingTape:    "300",
	model.CategoryOfficeTape:        "400",
	model.CategoryPaperMaskingTape:  "500",
	model.CategoryPlasticStrapping:  "600",
	model.CategoryStretchFilm:       "700",
	model.CategoryProtectiveProduct: "800",
}

// CategoryCode returns the 3-digit code of category, or 999 when the
// category is not one of the known ones.
func CategoryCode(category model.Category) string {
	if code, ok := categoryCodes[category]; ok {
		return code
	}
	return UnknownCategoryCode
}

// IsValidCode reports whether code is exactly BOX-<3 digits>-<4 digits>.
func IsValidCode(code string) bool {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return false
	}
	return parts[0] == codePrefix && isDigits(parts[1], 3) && isDigits(parts[2], 4)
}

// GenerateCode returns the next code for category given every code already
// in the catalog. The sequence is global: it continues from the highest
// sequence of any BOX- code regardless of its category.
//
// A BOX- code whose sequence cannot be read makes the maximum unknowable, so
// it is reported as apperr.MalformedCatalogErr instead of being skipped.
func GenerateCode(category model.Category, existing []string) (string, error) {
	next, err := NextSequence(existing)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", codePrefix, CategoryCode(category), next), nil
}

// NextSequence scans existing and returns max(sequence)+1, or 1 when no
// BOX- code is present.
func NextSequence(existing []string) (int, error) {
	highest := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, codePrefix+"-") {
			continue
		}

		seq, err := sequenceOf(code)
		if err != nil {
			return 0, apperr.MalformedCatalogErr.
				WithMsg(fmt.Sprintf("catalog contains a malformed product code: %q", code)).
				WrapParent(err)
		}
		highest = max(highest, seq)
	}

	if highest >= maxSequence {
		return 0, apperr.SequenceExhaustedErr
	}
	return highest + 1, nil
}

func sequenceOf(code string) (int, error) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected 3 segments, got %d", len(parts))
	}

	suffix := parts[2]
	if !isDigits(suffix, 4) {
		return 0, fmt.Errorf("sequence %q is not 4 digits", suffix)
	}

	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("parse sequence: %w", err)
	}
	return seq, nil
}

// isDigits reports whether s has exactly n ASCII digits.
func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
