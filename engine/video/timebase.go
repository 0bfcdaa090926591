package video

import "math"

// NoPTS marks a missing timestamp on the seconds-as-float side.
var NoPTS = math.Inf(-1)

// NoTicks marks a missing timestamp on the integer-ticks side.
const NoTicks = math.MinInt64

// TimeBaseQ is the microsecond fallback timebase.
var TimeBaseQ = Rational{1, 1000000}

// Rational is a positive fraction, used exclusively for timebases.
type Rational struct {
	Num int64
	Den int64
}

func (r Rational) Valid() bool {
	return r.Num >= 1 && r.Den >= 1
}

func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) Inv() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// Reduce divides out the greatest common divisor.
func (r Rational) Reduce() Rational {
	a, b := r.Num, r.Den
	for b != 0 {
		a, b = b, a%b
	}
	if a > 1 {
		r.Num /= a
		r.Den /= a
	}
	return r
}

// ratFromFloat approximates d with denominator maxDen. Plenty for frame
// rates; this is not a general continued-fraction approximation.
func ratFromFloat(d float64, maxDen int64) Rational {
	return Rational{
		Num: int64(math.Round(d * float64(maxDen))),
		Den: maxDen,
	}.Reduce()
}

// PickTimebase picks a "good" timebase for converting second timestamps
// to integer ticks for the decoder. Preference order: the stream's
// native timebase, one derived from a trusted frame rate, the
// microsecond fallback. A timebase coarser than a millisecond gets its
// precision raised so small timestamp adjustments between demuxer and
// decoder are not rounded away.
func PickTimebase(c *CodecParams) Rational {
	tb := c.NativeTimebase
	if !tb.Valid() {
		if c.ReliableFPS && c.FPS > 0 {
			tb = ratFromFloat(c.FPS, 1000000).Inv()
		}
		if !tb.Valid() {
			tb = TimeBaseQ
		}
	}

	if tb.Float() > 0.001 {
		num := tb.Num * 1000
		mult := (num + tb.Den - 1) / tb.Den
		tb.Den *= mult
	}

	tb = tb.Reduce()
	if !tb.Valid() {
		tb = TimeBaseQ
	}
	return tb
}

func orDefault(tb Rational) Rational {
	if tb.Valid() {
		return tb
	}
	return TimeBaseQ
}

// PTSToTicks converts a seconds timestamp to integer ticks in tb.
func PTSToTicks(pts float64, tb Rational) int64 {
	b := orDefault(tb)
	if pts == NoPTS {
		return NoTicks
	}
	return int64(math.Round(pts / b.Float()))
}

// PTSFromTicks is the inverse of PTSToTicks for the same timebase.
func PTSFromTicks(ticks int64, tb Rational) float64 {
	b := orDefault(tb)
	if ticks == NoTicks {
		return NoPTS
	}
	return float64(ticks) * b.Float()
}
