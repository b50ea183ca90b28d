package collection

import (
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/wire"
)

// Bin is one histogram bucket: the inclusive lower edge, the upper edge
// (exclusive except for the final bucket of a histogram) and the number of
// samples that fell inside.
type Bin struct {
	Lo    float64
	Hi    float64
	Count uint64
}

var (
	_ wire.Value       = Bin{}
	_ wire.Unmarshaler = (*Bin)(nil)
)

// NewBin returns a bin spanning [lo, hi) with the given count.
func NewBin(lo, hi float64, count uint64) Bin {
	return Bin{Lo: lo, Hi: hi, Count: count}
}

// Width returns the bucket width.
func (b Bin) Width() float64 {
	return b.Hi - b.Lo
}

// Inc adds one sample to the bucket count.
func (b *Bin) Inc() {
	b.Count++
}

// AppendJSON appends the verbose form {"count":n,"range":[lo,hi]}.
func (b Bin) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"count":`...)
	dst = appendUint(dst, b.Count)
	dst = append(dst, `,"range":[`...)
	dst, err := wire.AppendJSONFloat(dst, b.Lo)
	if err != nil {
		return nil, err
	}
	dst = append(dst, ',')
	dst, err = wire.AppendJSONFloat(dst, b.Hi)
	if err != nil {
		return nil, err
	}

	return append(dst, ']', '}'), nil
}

// AppendJSONC appends the compact form [lo,hi,count].
func (b Bin) AppendJSONC(dst []byte) ([]byte, error) {
	dst = append(dst, '[')
	dst, err := wire.AppendJSONFloat(dst, b.Lo)
	if err != nil {
		return nil, err
	}
	dst = append(dst, ',')
	dst, err = wire.AppendJSONFloat(dst, b.Hi)
	if err != nil {
		return nil, err
	}
	dst = append(dst, ',')
	dst = appendUint(dst, b.Count)

	return append(dst, ']'), nil
}

// AppendMsg appends the binary form: two fixed-width floats and a uvarint.
func (b Bin) AppendMsg(dst []byte) ([]byte, error) {
	dst = wire.AppendMsgFloat64(dst, b.Lo)
	dst = wire.AppendMsgFloat64(dst, b.Hi)
	dst = wire.AppendMsgUint(dst, b.Count)

	return dst, nil
}

// ParseJSON reconstructs the bin from its verbose form.
func (b *Bin) ParseJSON(data []byte) error {
	var aux struct {
		Count uint64     `json:"count"`
		Range [2]float64 `json:"range"`
	}
	if err := wire.UnmarshalJSON(data, &aux); err != nil {
		return err
	}
	b.Lo, b.Hi, b.Count = aux.Range[0], aux.Range[1], aux.Count

	return nil
}

// ParseJSONC reconstructs the bin from its compact form.
func (b *Bin) ParseJSONC(data []byte) error {
	var aux []gojson.RawMessage
	if err := wire.UnmarshalJSON(data, &aux); err != nil {
		return err
	}
	if len(aux) != 3 {
		return fmt.Errorf("%w: bin wants 3 values, got %d", errs.ErrMalformedPayload, len(aux))
	}

	lo, err := wire.ParseElemJSON[float64](aux[0])
	if err != nil {
		return err
	}
	hi, err := wire.ParseElemJSON[float64](aux[1])
	if err != nil {
		return err
	}
	count, err := wire.ParseElemJSON[uint64](aux[2])
	if err != nil {
		return err
	}
	b.Lo, b.Hi, b.Count = lo, hi, count

	return nil
}

// ParseMsg consumes the bin's bytes from the front of data.
func (b *Bin) ParseMsg(data []byte) ([]byte, error) {
	lo, rest, err := wire.ReadMsgFloat64(data)
	if err != nil {
		return nil, err
	}
	hi, rest, err := wire.ReadMsgFloat64(rest)
	if err != nil {
		return nil, err
	}
	count, rest, err := wire.ReadMsgUint(rest)
	if err != nil {
		return nil, err
	}
	b.Lo, b.Hi, b.Count = lo, hi, count

	return rest, nil
}

func appendUint(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}
