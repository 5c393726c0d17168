package bank

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAccessors(t *testing.T) {
	a := newAccount("testuser", "password123", 100)
	assert.Equal(t, "testuser", a.UserName())
	assert.Equal(t, "password123", a.Password())
	assert.EqualValues(t, 100, a.Balance())
}

func TestAddFunds(t *testing.T) {
	for _, b := range []int64{0, 1, 50, 1 << 40} {
		a := newAccount("u", "p", 100)
		require.NoError(t, a.AddFunds(b))
		assert.Equal(t, 100+b, a.Balance())
	}

	// 字串與浮點輸入皆會先轉為整數
	a := newAccount("u", "p", 0)
	require.NoError(t, a.AddFunds(" 25 "))
	require.NoError(t, a.AddFunds(5.9))
	assert.EqualValues(t, 30, a.Balance())
}

func TestAddFundsRejects(t *testing.T) {
	a := newAccount("u", "p", 100)

	err := a.AddFunds(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.Equal(t, "Invalid amount to add. Must be positive integer.", err.Error())

	err = a.AddFunds("ten")
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.Equal(t, "Invalid value. Must be integer", err.Error())

	err = a.AddFunds(nil)
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	err = a.AddFunds(int64(math.MaxInt64))
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	assert.EqualValues(t, 100, a.Balance())
}

func TestRemoveFunds(t *testing.T) {
	for _, r := range []int64{0, 1, 50, 100} {
		a := newAccount("u", "p", 100)
		require.NoError(t, a.RemoveFunds(r))
		assert.Equal(t, 100-r, a.Balance())
	}
}

func TestRemoveFundsRejects(t *testing.T) {
	a := newAccount("u", "p", 100)

	err := a.RemoveFunds(150)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.False(t, errors.Is(err, ErrInvalidAmount))

	err = a.RemoveFunds("1.5")
	assert.True(t, errors.Is(err, ErrInvalidAmount))

	assert.EqualValues(t, 100, a.Balance())
}

// 提領沒有負數檢查：負數提領會增加餘額。
func TestRemoveFundsNegativeIsNotRejected(t *testing.T) {
	a := newAccount("u", "p", 100)
	require.NoError(t, a.RemoveFunds(-20))
	assert.EqualValues(t, 120, a.Balance())

	err := a.RemoveFunds(int64(math.MinInt64))
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.EqualValues(t, 120, a.Balance())
}

func TestToInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: 42, want: 42, ok: true},
		{in: int32(-7), want: -7, ok: true},
		{in: "  100\n", want: 100, ok: true},
		{in: "-5000", want: -5000, ok: true},
		{in: 12.7, want: 12, ok: true},
		{in: true, want: 1, ok: true},
		{in: []byte("9"), want: 9, ok: true},
		{in: json.Number("9007199254740993"), want: 9007199254740993, ok: true},
		{in: json.Number("-25"), want: -25, ok: true},
		{in: json.Number("2.9"), want: 2, ok: true},
		{in: json.Number("1e19"), ok: false},
		{in: json.Number("99999999999999999999"), ok: false},
		{in: 1e19, ok: false},
		{in: -1e19, ok: false},
		{in: math.Inf(1), ok: false},
		{in: math.NaN(), ok: false},
		{in: "dfwe4234jl", ok: false},
		{in: "", ok: false},
		{in: "1.5", ok: false},
		{in: nil, ok: false},
		{in: struct{}{}, ok: false},
	}
	for _, tc := range cases {
		got, err := toInt(tc.in)
		if !tc.ok {
			assert.Error(t, err, "input %#v", tc.in)
			continue
		}
		require.NoError(t, err, "input %#v", tc.in)
		assert.Equal(t, tc.want, got, "input %#v", tc.in)
	}
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "ok", KindName(nil))
	assert.Equal(t, "invalid_amount", KindName(newError(ErrInvalidAmount, "x")))
	assert.Equal(t, "insufficient_funds", KindName(newError(ErrInsufficientFunds, "x")))
	assert.Equal(t, "invalid_account_creation", KindName(newError(ErrInvalidAccountCreation, "x")))
	assert.Equal(t, "invalid_account_retrieval", KindName(newError(ErrInvalidAccountRetrieval, "x")))
	wrapped := wrapError(ErrInvalidTransfer, "Transfer Error: ", newError(ErrInsufficientFunds, "x"))
	assert.Equal(t, "invalid_transfer", KindName(wrapped))
	assert.Equal(t, "internal", KindName(errors.New("boom")))
}
