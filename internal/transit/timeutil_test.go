package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeOnlyCompare(t *testing.T) {
	assert.Equal(t, 0, TimeOnlyCompare(clock(8, 30), clock(8, 30)))
	assert.Equal(t, 1, TimeOnlyCompare(clock(9, 0), clock(8, 59)))
	assert.Equal(t, 1, TimeOnlyCompare(clock(8, 31), clock(8, 30)))
	assert.Equal(t, -1, TimeOnlyCompare(clock(8, 30), clock(8, 31)))
	assert.Equal(t, -1, TimeOnlyCompare(clock(7, 59), clock(8, 0)))
}

func TestTimeOnlyCompareIgnoresDateAndSeconds(t *testing.T) {
	a := time.Date(2021, time.March, 5, 8, 30, 59, 0, time.UTC)
	b := time.Date(2024, time.November, 20, 8, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, TimeOnlyCompare(a, b))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "08:30 AM", FormatTime(clock(8, 30)))
	assert.Equal(t, "01:05 PM", FormatTime(clock(13, 5)))
}

func TestFirstLetters(t *testing.T) {
	assert.Equal(t, "SL", FirstLetters("Super Luxury"))
	assert.Equal(t, "L", FirstLetters("Luxury"))
	assert.Equal(t, "", FirstLetters(""))
}

func TestFormatMobileNo(t *testing.T) {
	assert.Equal(t, "07-123 45678", FormatMobileNo("0712345678"))
	assert.Equal(t, "07", FormatMobileNo("07"))
}
