package collection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/arbor/errs"
)

func TestBin_JSONRoundTrip(t *testing.T) {
	in := NewBin(0.5, 1.5, 10)

	enc, err := in.AppendJSON(nil)
	require.NoError(t, err)
	require.Equal(t, `{"count":10,"range":[0.5,1.5]}`, string(enc))

	var out Bin
	require.NoError(t, out.ParseJSON(enc))
	require.Equal(t, in, out)
}

func TestBin_JSONCRoundTrip(t *testing.T) {
	in := NewBin(-2, 2, 0)

	enc, err := in.AppendJSONC(nil)
	require.NoError(t, err)
	require.Equal(t, `[-2,2,0]`, string(enc))

	var out Bin
	require.NoError(t, out.ParseJSONC(enc))
	require.Equal(t, in, out)
}

func TestBin_MsgRoundTrip(t *testing.T) {
	in := NewBin(0.25, 0.75, 1<<33)

	enc, err := in.AppendMsg(nil)
	require.NoError(t, err)

	var out Bin
	rest, err := out.ParseMsg(append(enc, 0xAA))
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA}, rest)
	require.Equal(t, in, out)
}

func TestBin_NonFiniteEdges(t *testing.T) {
	b := NewBin(math.Inf(-1), 0, 1)
	_, err := b.AppendJSON(nil)
	require.ErrorIs(t, err, errs.ErrEncodeFailure)
	_, err = b.AppendJSONC(nil)
	require.ErrorIs(t, err, errs.ErrEncodeFailure)

	// The binary form has no finiteness restriction.
	_, err = b.AppendMsg(nil)
	require.NoError(t, err)
}

func TestBin_ParseMalformed(t *testing.T) {
	var b Bin
	require.ErrorIs(t, b.ParseJSON([]byte(`{`)), errs.ErrMalformedPayload)
	require.ErrorIs(t, b.ParseJSONC([]byte(`[1,2]`)), errs.ErrMalformedPayload)

	_, err := b.ParseMsg([]byte{1, 2})
	require.ErrorIs(t, err, errs.ErrMalformedPayload)
}

func TestBin_Width(t *testing.T) {
	require.Equal(t, 1.0, NewBin(0.5, 1.5, 0).Width())
}
