package stats

// DivRound returns num/den rounded half to even in exact integer
// arithmetic. den must be positive.
func DivRound(num, den int) int {
	q, r := num/den, num%den
	if r < 0 {
		q--
		r += den
	}
	switch twice := 2 * r; {
	case twice > den:
		q++
	case twice == den && q%2 != 0:
		q++
	}
	return q
}
