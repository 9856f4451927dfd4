package vim

import "math"

// maxCount caps counts so arithmetic on them cannot overflow.
const maxCount = math.MaxInt32

// CountState accumulates a count prefix.
type CountState struct {
	// Value is the count typed so far, 0 if none.
	Value int

	// Active is set once a digit has been accepted.
	Active bool
}

// Reset clears the count.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds digit r to the count. A 0 with no count so far is
// not a digit but the motion to column 0, and is rejected.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	if c.Value > (maxCount-digit)/10 {
		c.Value = maxCount
		return true
	}
	c.Value = c.Value*10 + digit
	return true
}

// Get returns the count, or 1 if none was typed.
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// CombineCounts multiplies the counts before and after an operator, as in
// 2d3w. A zero count stands for 1.
func CombineCounts(count1, count2 int) int {
	count1, count2 = max(count1, 1), max(count2, 1)
	if count1 > maxCount/count2 {
		return maxCount
	}
	return count1 * count2
}
