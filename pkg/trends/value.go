package trends

import (
	"strconv"
	"time"
)

// Kind identifies which scalar a Value holds.
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

// Value is one cell of a ResultSet: a string, number, bool, timestamp, or missing.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

func MissingValue() Value { return Value{} }
func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content of the value. Only numbers qualify.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AsTime interprets the value as a point in time. Strings are parsed with the
// common ISO layouts and numbers are taken as epoch milliseconds, which is how
// the gateway serialises a datetime index.
func (v Value) AsTime() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindNumber:
		return time.UnixMilli(int64(v.num)).UTC(), true
	case KindString:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v.str); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// String renders the value as display text. Missing values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	}
	return ""
}
