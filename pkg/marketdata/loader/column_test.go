package loader

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/zentools/pkg/frame"
	"github.com/stretchr/testify/suite"
)

type ColumnKindTestSuite struct {
	suite.Suite
}

func TestColumnKindSuite(t *testing.T) {
	suite.Run(t, new(ColumnKindTestSuite))
}

func (suite *ColumnKindTestSuite) TestKindFromFirstNonNullValue() {
	ts := time.Date(2023, 10, 19, 21, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		values []any
		kind   frame.Kind
	}{
		{name: "float before text", values: []any{nil, 1.5, "n/a"}, kind: frame.KindFloat},
		{name: "text before float", values: []any{nil, "ETHUSDT", 2.0}, kind: frame.KindString},
		{name: "time before text", values: []any{ts, "later"}, kind: frame.KindTime},
		{name: "integers", values: []any{int64(3), nil, int32(4)}, kind: frame.KindFloat},
		{name: "all null", values: []any{nil, nil}, kind: frame.KindFloat},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			c := toColumn("x", tc.values)
			suite.Equal(tc.kind, c.Kind())
			suite.Equal(len(tc.values), c.Len())
		})
	}
}

func (suite *ColumnKindTestSuite) TestMismatchedCellsAreMissing() {
	c := toColumn("Close", []any{1.5, "n/a", nil, int64(2)})

	suite.Equal(1.5, c.FloatAt(0))
	suite.True(math.IsNaN(c.FloatAt(1)))
	suite.True(c.IsMissing(2))
	suite.Equal(2.0, c.FloatAt(3))
}
