package costfunction

import "math"

/*
ToblerSpeed. Tobler's hiking function, in meter/second:

	speed = baseSpeed * exp(-k * |grade - idealGrade|)

speed is maximal (baseSpeed) at idealGrade and decays exponentially as the grade departs from it.
returns 0 for a non-positive or non-finite baseSpeed.
*/
func ToblerSpeed(grade, k, idealGrade, baseSpeed float64) float64 {
	if !(baseSpeed > 0) || math.IsInf(baseSpeed, 1) {
		return 0
	}
	d := math.Abs(grade - idealGrade)
	if d == 0 {
		return baseSpeed
	}
	speed := baseSpeed * math.Exp(-k*d)
	if math.IsNaN(speed) {
		return 0
	}
	return speed
}

/*
FindDecayRate. decay rate k such that ToblerSpeed at toleranceGrade is baseSpeed/cutoffRatio:

	k = ln(cutoffRatio) / |toleranceGrade - idealGrade|

a tolerance equal to the ideal grade gives +Inf.
*/
func FindDecayRate(toleranceGrade, idealGrade, cutoffRatio float64) float64 {
	d := math.Abs(toleranceGrade - idealGrade)
	if d == 0 {
		return math.Inf(1)
	}
	return math.Log(cutoffRatio) / d
}
