package driven

import "github.com/custodia-labs/textsasset/internal/core/domain"

// CodecRegistry selects the codec for a method.
type CodecRegistry interface {
	// Get returns the codec registered for method.
	// Returns domain.ErrUnsupportedMethod when none is registered.
	Get(method domain.Method) (Codec, error)

	// Register adds a codec to the registry.
	Register(codec Codec)

	// Methods returns the registered methods in menu order.
	Methods() []domain.Method
}
