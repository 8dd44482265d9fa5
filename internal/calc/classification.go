package calc

import (
	"fmt"
	"strings"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

const (
	ClassExcellent = "Excelente"
	ClassGood      = "Bom"
	ClassFair      = "Regular"
	ClassPoor      = "Fraco"
	ClassVeryPoor  = "Muito Fraco"
	ClassInvalid   = "Inválido"
)

// ParseGender accepts the English and Portuguese spellings used in
// evaluatee profiles.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "masculino":
		return Male, nil
	case "female", "f", "feminino":
		return Female, nil
	}
	return "", validationErr("unknown gender %q", s)
}

// thresholds are minimum VO2max values (ml/kg/min) for each label, best first.
type thresholds struct {
	Excellent, Good, Fair, Poor float64
}

// Bands are 20-29, 30-39, 40-49, 50-59 and 60+.
var classificationTable = map[Gender][5]thresholds{
	Male: {
		{52, 43, 34, 25},
		{49, 40, 31, 23},
		{45, 36, 27, 20},
		{43, 34, 25, 18},
		{39, 31, 22, 16},
	},
	Female: {
		{49, 38, 31, 24},
		{45, 34, 28, 20},
		{42, 32, 25, 17},
		{38, 29, 22, 15},
		{35, 25, 20, 13},
	},
}

func ageBand(age int) int {
	switch {
	case age < 30:
		return 0
	case age < 40:
		return 1
	case age < 50:
		return 2
	case age < 60:
		return 3
	default:
		return 4
	}
}

// BandLabel returns the age band label used in reports, e.g. "30-39".
func BandLabel(age int) string {
	b := ageBand(age)
	if b == 4 {
		return "60+"
	}
	lo := 20 + b*10
	return fmt.Sprintf("%d-%d", lo, lo+9)
}

// Classify labels a VO2max for the given age and gender. A gender outside
// Male/Female is classified with the male 20-29 band whatever the age.
func Classify(vo2Max float64, age int, gender Gender) string {
	bands, ok := classificationTable[gender]
	var t thresholds
	if ok {
		t = bands[ageBand(age)]
	} else {
		t = classificationTable[Male][0]
	}

	switch {
	case vo2Max >= t.Excellent:
		return ClassExcellent
	case vo2Max >= t.Good:
		return ClassGood
	case vo2Max >= t.Fair:
		return ClassFair
	case vo2Max >= t.Poor:
		return ClassPoor
	default:
		return ClassVeryPoor
	}
}

// ClassRank orders labels from Muito Fraco (1) to Excelente (5); Inválido
// and unknown labels rank 0.
func ClassRank(class string) int {
	switch class {
	case ClassExcellent:
		return 5
	case ClassGood:
		return 4
	case ClassFair:
		return 3
	case ClassPoor:
		return 2
	case ClassVeryPoor:
		return 1
	}
	return 0
}
