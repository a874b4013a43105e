package codecs

import (
	"fmt"

	"github.com/custodia-labs/textsasset/internal/codecs/csvstring"
	"github.com/custodia-labs/textsasset/internal/codecs/jsonstring"
	"github.com/custodia-labs/textsasset/internal/codecs/jsontable"
	"github.com/custodia-labs/textsasset/internal/codecs/xmlentry"
	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

// Ensure Registry implements the interface.
var _ driven.CodecRegistry = (*Registry)(nil)

// Registry maps methods to codecs.
type Registry struct {
	codecs map[domain.Method]driven.Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[domain.Method]driven.Codec),
	}
}

// Defaults returns a registry holding the four built-in codecs.
// Rewritten values are resolved with lines.
func Defaults(lines *linecodec.Codec) *Registry {
	r := NewRegistry()
	r.Register(xmlentry.New(lines))
	r.Register(jsonstring.New(lines))
	r.Register(csvstring.New(lines))
	r.Register(jsontable.New(lines))
	return r
}

// Register adds a codec, replacing any codec for the same method.
func (r *Registry) Register(codec driven.Codec) {
	r.codecs[codec.Method()] = codec
}

// Get returns the codec for method.
func (r *Registry) Get(method domain.Method) (driven.Codec, error) {
	codec, ok := r.codecs[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, method)
	}
	return codec, nil
}

// Methods returns registered methods in menu order.
func (r *Registry) Methods() []domain.Method {
	var methods []domain.Method
	for _, m := range domain.AllMethods() {
		if _, ok := r.codecs[m]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}
