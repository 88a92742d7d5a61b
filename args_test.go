package xcstrings

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsOf(t *testing.T) {
	args, err := ArgsOf(4, "400", 4.5, int8(-1), uint64(7), float32(0.5), time.Second, Int(9))
	require.NoError(t, err)

	kinds := make([]ArgKind, len(args))
	for i, a := range args {
		kinds[i] = a.Kind()
	}
	assert.Equal(t, []ArgKind{ArgInt, ArgString, ArgFloat, ArgInt, ArgInt, ArgFloat, ArgString, ArgInt}, kinds)
	assert.Equal(t, "1s", args[6].String())

	_, err = ArgsOf(4, []int{1})
	require.ErrorIs(t, err, ErrArgumentTypeMismatch)
	assert.Contains(t, err.Error(), "argument 2")

	assert.Panics(t, func() { MustArgs(struct{}{}) })
}

func TestArgsOf_UnsignedOverflow(t *testing.T) {
	args, err := ArgsOf(uint64(math.MaxInt64), uint(7))
	require.NoError(t, err)
	i, _ := args[0].Int64()
	assert.EqualValues(t, int64(math.MaxInt64), i)

	_, err = ArgsOf("x", uint64(math.MaxUint64))
	require.ErrorIs(t, err, ErrArgumentTypeMismatch)
	assert.Contains(t, err.Error(), "argument 2")
}

func TestArg_Accessors(t *testing.T) {
	i, ok := Int(3).Int64()
	assert.True(t, ok)
	assert.EqualValues(t, 3, i)

	_, ok = Float(3).Int64()
	assert.False(t, ok)

	f, ok := Int(3).Float64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = String("3").Float64()
	assert.False(t, ok)

	s, ok := String("x").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	assert.Equal(t, "2.25", Float(2.25).String())
	assert.Equal(t, "", Arg{}.String())
	assert.Equal(t, "invalid", Arg{}.Kind().String())
}

func TestResolveWithArgsOf(t *testing.T) {
	e := New(newTestCatalog(t))
	got, err := e.Resolve("numberOfItems", "en", MustArgs(4, "400")...)
	require.NoError(t, err)
	assert.Equal(t, "4 items, KES 400", got)
}
