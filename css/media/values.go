package media

import (
	"math"
	"strconv"

	pa "github.com/benoitkugler/cascade/css/parser"
	"github.com/benoitkugler/cascade/utils"
)

// ValueType is the type tag of a FeatureValue.
type ValueType uint8

const (
	TNone ValueType = iota
	TNumber
	TLength
	TResolution
	TRatio
	TIdent
	TCalc
)

// FeatureValue is a typed media feature value, either found in a
// query or provided by an Environment.
type FeatureValue struct {
	Type ValueType
	Num  float64
	Den  float64 // ratio consequent
	Unit string  // lower case
	// Ident is the lower case keyword of TIdent values
	Ident string
	Calc  []pa.Token
}

func Number(v float64) FeatureValue { return FeatureValue{Type: TNumber, Num: v} }
func Length(v float64, unit string) FeatureValue { return FeatureValue{Type: TLength, Num: v, Unit: unit} }
func Resolution(dppx float64) FeatureValue { return FeatureValue{Type: TResolution, Num: dppx, Unit: "dppx"} }
func Ratio(num, den float64) FeatureValue { return FeatureValue{Type: TRatio, Num: num, Den: den} }
func Keyword(kw string) FeatureValue { return FeatureValue{Type: TIdent, Ident: utils.AsciiLower(kw)} }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v FeatureValue) String() string {
	switch v.Type {
	case TNumber:
		return formatFloat(v.Num)
	case TLength, TResolution:
		return formatFloat(v.Num) + v.Unit
	case TRatio:
		return formatFloat(v.Num) + "/" + formatFloat(v.Den)
	case TIdent:
		return v.Ident
	case TCalc:
		return pa.SerializeCompact(v.Calc)
	default:
		return ""
	}
}

// absolute length units, in px
var absoluteLengths = map[string]float64{
	"px": 1,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
	"in": 96,
	"pt": 96. / 72,
	"pc": 16,
}

var relativeLengths = utils.NewSet("em", "rem", "ex", "ch", "vw", "vh", "vmin", "vmax")

// resolutions, in dppx
var resolutions = map[string]float64{
	"dppx": 1,
	"x":    1,
	"dpi":  1. / 96,
	"dpcm": 2.54 / 96,
}

// parseValue parses the tokens of one side of a feature comparison.
func parseValue(tokens []pa.Token) (FeatureValue, bool) {
	switch len(tokens) {
	case 1:
		switch t := tokens[0].(type) {
		case pa.Number:
			return Number(t.Float()), true
		case pa.Dimension:
			unit := t.LowerUnit()
			if _, ok := absoluteLengths[unit]; ok || relativeLengths.Has(unit) {
				return Length(t.Float(), unit), true
			}
			if _, ok := resolutions[unit]; ok {
				return FeatureValue{Type: TResolution, Num: t.Float(), Unit: unit}, true
			}
		case pa.Ident:
			return Keyword(t.Value), true
		case pa.FunctionBlock:
			switch t.LowerName() {
			case "calc", "min", "max", "clamp":
				return FeatureValue{Type: TCalc, Calc: tokens}, true
			}
		}
	case 3:
		num, ok1 := tokens[0].(pa.Number)
		den, ok2 := tokens[2].(pa.Number)
		if ok1 && ok2 && pa.IsLiteral(tokens[1], "/") && num.Float() >= 0 && den.Float() >= 0 {
			return Ratio(num.Float(), den.Float()), true
		}
	}
	return FeatureValue{}, false
}

// unitClass groups the values which can be compared
type unitClass uint8

const (
	classNone unitClass = iota
	classNumber
	classLength
	classResolution
)

// resolve converts v to its canonical unit (px, dppx, or a plain number
// for numbers and ratios). When env is nil, only absolute units are resolved,
// including inside calc() and the other math functions.
func resolve(v FeatureValue, env Environment) (float64, unitClass, bool) {
	switch v.Type {
	case TNumber:
		return v.Num, classNumber, true
	case TRatio:
		if v.Den == 0 {
			return math.Inf(1), classNumber, true
		}
		return v.Num / v.Den, classNumber, true
	case TResolution:
		f, ok := resolutions[v.Unit]
		return v.Num * f, classResolution, ok
	case TIdent:
		if v.Ident == "infinite" {
			return math.Inf(1), classResolution, true
		}
	case TLength:
		if f, ok := absoluteLengths[v.Unit]; ok {
			return v.Num * f, classLength, true
		}
		if env == nil {
			return 0, classNone, false
		}
		px, ok := relativeToPx(v.Unit, env)
		return v.Num * px, classLength, ok
	case TCalc:
		c := calculator{env: env}
		r, ok := c.eval(v.Calc)
		return r.value, r.class, ok
	}
	return 0, classNone, false
}

func relativeToPx(unit string, env Environment) (float64, bool) {
	fm := env.FontMetrics()
	w, h := env.ViewportSize()
	switch unit {
	case "em":
		return fm.Em, true
	case "rem":
		return fm.Rem, true
	case "ex":
		return fm.Ex, true
	case "ch":
		return fm.Ch, true
	case "vw":
		return w / 100, true
	case "vh":
		return h / 100, true
	case "vmin":
		return math.Min(w, h) / 100, true
	case "vmax":
		return math.Max(w, h) / 100, true
	}
	return 0, false
}

type calcResult struct {
	value float64
	class unitClass
}

// calculator evaluates calc(), min(), max() and clamp() expressions
type calculator struct {
	env Environment
}

func (c calculator) eval(tokens []pa.Token) (calcResult, bool) {
	tokens = pa.RemoveWhitespace(tokens)
	if len(tokens) == 0 {
		return calcResult{}, false
	}
	// sum := product (('+' | '-') product)*
	var (
		acc     calcResult
		sign    = 1.
		start   = 0
		started = false
	)
	flush := func(end int) bool {
		r, ok := c.product(tokens[start:end])
		if !ok {
			return false
		}
		if !started {
			acc, started = calcResult{value: sign * r.value, class: r.class}, true
			return true
		}
		if r.class != acc.class {
			// 0 can be added to anything
			if r.value == 0 && r.class == classNumber {
				return true
			}
			if acc.value == 0 && acc.class == classNumber {
				acc.class = r.class
			} else {
				return false
			}
		}
		acc.value += sign * r.value
		return true
	}
	for i, t := range tokens {
		if i > start && (pa.IsLiteral(t, "+") || pa.IsLiteral(t, "-")) {
			if !flush(i) {
				return calcResult{}, false
			}
			sign = 1
			if pa.IsLiteral(t, "-") {
				sign = -1
			}
			start = i + 1
		}
	}
	if start >= len(tokens) || !flush(len(tokens)) {
		return calcResult{}, false
	}
	return acc, true
}

func (c calculator) product(tokens []pa.Token) (calcResult, bool) {
	if len(tokens) == 0 {
		return calcResult{}, false
	}
	acc, ok := c.factor(tokens[0])
	if !ok {
		return acc, false
	}
	for i := 1; i+1 < len(tokens); i += 2 {
		r, ok := c.factor(tokens[i+1])
		if !ok {
			return r, false
		}
		switch {
		case pa.IsLiteral(tokens[i], "*"):
			if acc.class != classNumber && r.class != classNumber {
				return r, false
			}
			if acc.class == classNumber {
				acc.class = r.class
			}
			acc.value *= r.value
		case pa.IsLiteral(tokens[i], "/"):
			if r.class != classNumber || r.value == 0 {
				return r, false
			}
			acc.value /= r.value
		default:
			return r, false
		}
	}
	if len(tokens)%2 == 0 {
		return acc, false
	}
	return acc, true
}

func (c calculator) factor(t pa.Token) (calcResult, bool) {
	switch t := t.(type) {
	case pa.Number:
		return calcResult{t.Float(), classNumber}, true
	case pa.Dimension:
		v, ok := parseValue([]pa.Token{t})
		if !ok {
			return calcResult{}, false
		}
		f, class, ok := resolve(v, c.env)
		return calcResult{f, class}, ok
	case pa.ParenthesesBlock:
		return c.eval(t.Content)
	case pa.FunctionBlock:
		args := pa.SplitOnComma(pa.RemoveWhitespace(t.Arguments))
		switch t.LowerName() {
		case "calc":
			return c.eval(t.Arguments)
		case "min", "max":
			var out calcResult
			for i, arg := range args {
				r, ok := c.eval(arg)
				if !ok || (i > 0 && r.class != out.class) {
					return r, false
				}
				if i == 0 || (t.LowerName() == "min" && r.value < out.value) || (t.LowerName() == "max" && r.value > out.value) {
					out = r
				}
			}
			return out, len(args) > 0
		case "clamp":
			if len(args) != 3 {
				return calcResult{}, false
			}
			lo, ok1 := c.eval(args[0])
			v, ok2 := c.eval(args[1])
			hi, ok3 := c.eval(args[2])
			if !(ok1 && ok2 && ok3) || lo.class != v.class || v.class != hi.class {
				return calcResult{}, false
			}
			v.value = math.Max(lo.value, math.Min(v.value, hi.value))
			return v, true
		}
	}
	return calcResult{}, false
}
