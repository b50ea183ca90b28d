package collection

import (
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arbor/errs"
	"github.com/arloliu/arbor/wire"
)

// Point is a 2-D sample pair. A plot is a Collection of Points.
type Point struct {
	X float64
	Y float64
}

var (
	_ wire.Value       = Point{}
	_ wire.Unmarshaler = (*Point)(nil)
)

// NewPoint returns the point (x, y).
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// R returns the distance of the point from the origin.
func (p Point) R() float64 {
	return math.Hypot(p.X, p.Y)
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of p and q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// AppendJSON appends the verbose form {"x":...,"y":...}.
func (p Point) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"x":`...)
	dst, err := wire.AppendJSONFloat(dst, p.X)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"y":`...)
	dst, err = wire.AppendJSONFloat(dst, p.Y)
	if err != nil {
		return nil, err
	}

	return append(dst, '}'), nil
}

// AppendJSONC appends the compact form [x,y].
func (p Point) AppendJSONC(dst []byte) ([]byte, error) {
	dst = append(dst, '[')
	dst, err := wire.AppendJSONFloat(dst, p.X)
	if err != nil {
		return nil, err
	}
	dst = append(dst, ',')
	dst, err = wire.AppendJSONFloat(dst, p.Y)
	if err != nil {
		return nil, err
	}

	return append(dst, ']'), nil
}

// AppendMsg appends the binary form: two fixed-width floats.
func (p Point) AppendMsg(dst []byte) ([]byte, error) {
	dst = wire.AppendMsgFloat64(dst, p.X)
	dst = wire.AppendMsgFloat64(dst, p.Y)

	return dst, nil
}

// ParseJSON reconstructs the point from its verbose form.
func (p *Point) ParseJSON(data []byte) error {
	var aux struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := wire.UnmarshalJSON(data, &aux); err != nil {
		return err
	}
	p.X, p.Y = aux.X, aux.Y

	return nil
}

// ParseJSONC reconstructs the point from its compact form.
func (p *Point) ParseJSONC(data []byte) error {
	var aux []gojson.RawMessage
	if err := wire.UnmarshalJSON(data, &aux); err != nil {
		return err
	}
	if len(aux) != 2 {
		return fmt.Errorf("%w: point wants 2 values, got %d", errs.ErrMalformedPayload, len(aux))
	}

	x, err := wire.ParseElemJSON[float64](aux[0])
	if err != nil {
		return err
	}
	y, err := wire.ParseElemJSON[float64](aux[1])
	if err != nil {
		return err
	}
	p.X, p.Y = x, y

	return nil
}

// ParseMsg consumes the point's bytes from the front of data.
func (p *Point) ParseMsg(data []byte) ([]byte, error) {
	x, rest, err := wire.ReadMsgFloat64(data)
	if err != nil {
		return nil, err
	}
	y, rest, err := wire.ReadMsgFloat64(rest)
	if err != nil {
		return nil, err
	}
	p.X, p.Y = x, y

	return rest, nil
}
