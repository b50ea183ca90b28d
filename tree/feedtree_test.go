package tree

import (
	"fmt"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/arbor/collection"
	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/format"
	"github.com/arloliu/arbor/wire"
)

// sample is a user-defined element type implementing both halves of the
// storage contract, so a FeedTree of it round-trips through every format.
type sample struct {
	t     float64
	label string
}

func (s sample) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"t":`...)
	dst, err := wire.AppendJSONFloat(dst, s.t)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"label":`...)
	dst, err = wire.AppendJSONString(dst, s.label)
	if err != nil {
		return nil, err
	}

	return append(dst, '}'), nil
}

func (s sample) AppendJSONC(dst []byte) ([]byte, error) {
	dst = append(dst, '[')
	dst, err := wire.AppendJSONFloat(dst, s.t)
	if err != nil {
		return nil, err
	}
	dst = append(dst, ',')
	dst, err = wire.AppendJSONString(dst, s.label)
	if err != nil {
		return nil, err
	}

	return append(dst, ']'), nil
}

func (s sample) AppendMsg(dst []byte) ([]byte, error) {
	dst = wire.AppendMsgFloat64(dst, s.t)
	dst = wire.AppendMsgString(dst, s.label)

	return dst, nil
}

func (s *sample) ParseJSON(data []byte) error {
	var aux struct {
		T     float64 `json:"t"`
		Label string  `json:"label"`
	}
	if err := wire.UnmarshalJSON(data, &aux); err != nil {
		return err
	}
	s.t = aux.T
	s.label = aux.Label

	return nil
}

func (s *sample) ParseJSONC(data []byte) error {
	var parts []gojson.RawMessage
	if err := wire.UnmarshalJSON(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("%w: sample wants 2 values, got %d", errs.ErrMalformedPayload, len(parts))
	}
	if err := wire.UnmarshalJSON(parts[0], &s.t); err != nil {
		return err
	}

	return wire.UnmarshalJSON(parts[1], &s.label)
}

func (s *sample) ParseMsg(data []byte) ([]byte, error) {
	var err error
	s.t, data, err = wire.ReadMsgFloat64(data)
	if err != nil {
		return nil, err
	}
	s.label, data, err = wire.ReadMsgString(data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

func TestFeedTree_Basics(t *testing.T) {
	ft := NewFeedTree[float64]("sweep", format.TagF64)
	require.Equal(t, "sweep", ft.Name())
	require.Equal(t, format.TagF64, ft.TypeTag())
	require.Equal(t, 0, ft.FeedCount())

	require.NoError(t, ft.AddField("desc", "temperature sweep"))
	err := ft.AddField("desc", "again")
	require.ErrorIs(t, err, errs.ErrDuplicateName)
	require.Equal(t, 1, ft.FieldCount())
}

func TestFeedTree_AddFeedMergesExisting(t *testing.T) {
	ft := NewFeedTree[float64]("sweep", format.TagF64)
	require.NoError(t, ft.AddFeed("temps", collection.From([]float64{1, 2})))
	require.NoError(t, ft.AddFeed("temps", collection.From([]float64{3})))
	require.Equal(t, 1, ft.FeedCount())

	f, ok := ft.Feed("temps")
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3}, f.Data().Values())
}

func TestFeedTree_AddFeedCopiesInput(t *testing.T) {
	ft := NewFeedTree[float64]("sweep", format.TagF64)
	src := collection.From([]float64{1, 2})
	require.NoError(t, ft.AddFeed("temps", src))

	src.Push(99)
	f, _ := ft.Feed("temps")
	require.Equal(t, 2, f.Len())
}

func TestFeedTree_Record(t *testing.T) {
	ft := NewFeedTree[float64]("sweep", format.TagF64)
	require.NoError(t, ft.AddFeed("temps", collection.New[float64]()))

	require.NoError(t, ft.Record("temps", 0.5))
	require.NoError(t, ft.Record("temps", 1.5))

	err := ft.Record("missing", 2.5)
	require.ErrorIs(t, err, errs.ErrUnknownName)

	f, _ := ft.Feed("temps")
	require.Equal(t, []float64{0.5, 1.5}, f.Data().Values())
}

func TestFeedTree_FeedOrder(t *testing.T) {
	ft := NewFeedTree[uint64]("counts", format.TagU64)
	names := []string{"c", "a", "b"}
	for _, n := range names {
		require.NoError(t, ft.AddFeed(n, collection.From([]uint64{1})))
	}

	var got []string
	for f := range ft.Feeds() {
		got = append(got, f.Name())
	}
	require.Equal(t, names, got)
}

func TestFeedTree_EncodeJSONC(t *testing.T) {
	ft := NewFeedTree[float64]("F", format.TagF64)
	require.NoError(t, ft.AddField("seed", int64(42)))
	require.NoError(t, ft.AddFeed("e", collection.From([]float64{1, 2})))

	data, err := ft.EncodeJSONC()
	require.NoError(t, err)
	require.Equal(t, `["F","f64",[["seed",42]],[["e","f64",[1,2]]]]`, string(data))
}

func TestFeedTree_RoundTripScalars(t *testing.T) {
	build := func() *FeedTree[float64] {
		ft := NewFeedTree[float64]("sweep", format.TagF64)
		require.NoError(t, ft.AddField("desc", "two chains"))
		require.NoError(t, ft.AddField("beta", 0.125))
		require.NoError(t, ft.AddFeed("chain0", collection.From([]float64{0.5, 1.25, -3})))
		require.NoError(t, ft.AddFeed("chain1", collection.From([]float64{2, 4, 8})))

		return ft
	}

	for _, f := range []format.Format{format.JSON, format.JSONC, format.Msg} {
		t.Run(f.String(), func(t *testing.T) {
			ft := build()
			data, err := ft.Encode(f)
			require.NoError(t, err)

			back, err := DecodeFeedTree[float64](data, f)
			require.NoError(t, err)

			require.Equal(t, ft.Name(), back.Name())
			require.Equal(t, ft.TypeTag(), back.TypeTag())
			require.Equal(t, 2, back.FeedCount())

			beta, ok := back.Field("beta")
			require.True(t, ok)
			require.Equal(t, 0.125, beta)

			c1, ok := back.Feed("chain1")
			require.True(t, ok)
			require.Equal(t, []float64{2, 4, 8}, c1.Data().Values())

			again, err := back.Encode(f)
			require.NoError(t, err)
			require.Equal(t, data, again)
		})
	}
}

func TestFeedTree_RoundTripStrings(t *testing.T) {
	ft := NewFeedTree[string]("log", format.TagStr)
	require.NoError(t, ft.AddFeed("events", collection.From([]string{"start", "flip \"q\"", "done"})))

	for _, f := range []format.Format{format.JSON, format.JSONC, format.Msg} {
		data, err := ft.Encode(f)
		require.NoError(t, err)

		back, err := DecodeFeedTree[string](data, f)
		require.NoError(t, err)

		ev, _ := back.Feed("events")
		require.Equal(t, []string{"start", "flip \"q\"", "done"}, ev.Data().Values())
	}
}

func TestFeedTree_RoundTripUserType(t *testing.T) {
	build := func() *FeedTree[sample] {
		ft := NewFeedTree[sample]("trace", "sample")
		require.NoError(t, ft.AddField("steps", int64(3)))
		require.NoError(t, ft.AddFeed("walker", collection.From([]sample{
			{t: 0, label: "init"},
			{t: 0.5, label: "hop"},
			{t: 1.25, label: "rest"},
		})))

		return ft
	}

	for _, f := range []format.Format{format.JSON, format.JSONC, format.Msg} {
		t.Run(f.String(), func(t *testing.T) {
			ft := build()
			data, err := ft.Encode(f)
			require.NoError(t, err)

			back, err := DecodeFeedTree[sample](data, f)
			require.NoError(t, err)
			require.Equal(t, "sample", back.TypeTag())

			w, ok := back.Feed("walker")
			require.True(t, ok)
			require.Equal(t, sample{t: 0.5, label: "hop"}, w.Data().At(1))

			again, err := back.Encode(f)
			require.NoError(t, err)
			require.Equal(t, data, again)
		})
	}
}

func TestFeedTree_DecodeTagMismatch(t *testing.T) {
	// a feed tagged differently from its tree cannot be reconstructed
	data := []byte(`["F","f64",[],[["e","u64",[1,2]]]]`)
	_, err := DecodeFeedTreeJSONC[float64](data)
	require.ErrorIs(t, err, errs.ErrMalformedPayload)
}

func TestFeedTree_DecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		f    format.Format
		data []byte
	}{
		{"json garbage", format.JSON, []byte(`[`)},
		{"json missing name", format.JSON, []byte(`{"type":"f64","fields":{},"feeds":{}}`)},
		{"json unexpected key", format.JSON, []byte(`{"name":"f","bogus":1}`)},
		{"jsonc wrong arity", format.JSONC, []byte(`["f","f64",[]]`)},
		{"msg empty", format.Msg, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeFeedTree[float64](tc.data, tc.f)
			require.ErrorIs(t, err, errs.ErrMalformedPayload)
		})
	}
}

func TestFeedTree_DecodeMsgRejectsTreePayload(t *testing.T) {
	tr := New("t")
	data, err := tr.EncodeMsg()
	require.NoError(t, err)

	_, err = DecodeFeedTreeMsg[float64](data)
	require.ErrorIs(t, err, errs.ErrMalformedPayload)
}
