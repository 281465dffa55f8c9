package value

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "2021", Text(2021))
	assert.Equal(t, "2021", Text(float64(2021)))
	assert.Equal(t, "1.5", Text(1.5))
	assert.Equal(t, "2023-04-01", Text(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestListify(t *testing.T) {
	assert.Nil(t, Listify(nil))
	assert.Equal(t, []any{"a"}, Listify("a"))
	assert.Equal(t, []any{"a", "b"}, Listify([]string{"a", "b"}))
	m := map[string]any{"name": "x"}
	assert.Equal(t, []any{m}, Listify(m))
}

func TestFirst(t *testing.T) {
	m := map[string]any{"familyName": "", "family-names": "Hucka", "name": []any{}}
	assert.Equal(t, "Hucka", FirstText(m, "familyName", "family-names"))
	assert.Nil(t, First(m, "name", "missing"))
	assert.True(t, IsEmpty("  "))
	assert.False(t, IsEmpty(0))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input     string
		wantISO   string
		precision DatePrecision
	}{
		{"2021", "2021-01-01", PrecisionYear},
		{"2021-05", "2021-05-01", PrecisionMonth},
		{"2021-05-07", "2021-05-07", PrecisionDay},
		{"2021-5-7", "2021-05-07", PrecisionDay},
		{"2021/05/07", "2021-05-07", PrecisionDay},
		{"2023-01-05T18:14:29Z", "2023-01-05", PrecisionDay},
		{"2023-01-05T23:14:29-05:00", "2023-01-06", PrecisionDay},
		{"January 5, 2023", "2023-01-05", PrecisionDay},
		{"March 2020", "2020-03-01", PrecisionMonth},
		{"circa 1999", "1999-01-01", PrecisionYear},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantISO, d.ISO())
			assert.Equal(t, tt.precision, d.Precision)
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, input := range []string{"", "someday", "2021-13-01", "2021-02-30"} {
		_, err := ParseDate(input)
		assert.True(t, errors.Is(err, ErrUnparseableDate), "input %q", input)
	}
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "2019-01-01", ISODate(2019))
	assert.Equal(t, "2019-02-03", ISODate("2019-02-03"))
	assert.Equal(t, "", ISODate("unknown"))
	assert.Equal(t, "", ISODate(nil))
}
