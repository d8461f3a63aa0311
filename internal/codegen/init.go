package codegen

import (
	"github.com/okra-platform/okragen/internal/codegen/golang"
	"github.com/okra-platform/okragen/internal/codegen/protobuf"
	"github.com/okra-platform/okragen/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register("go", func() Generator {
		return golang.NewGenerator()
	})

	DefaultRegistry.Register("typescript", func() Generator {
		return typescript.NewGenerator()
	})
	DefaultRegistry.Register("ts", func() Generator {
		return typescript.NewGenerator()
	})

	DefaultRegistry.Register("protobuf", func() Generator {
		return protobuf.NewGenerator().WithDescriptor(true)
	})
	DefaultRegistry.Register("proto", func() Generator {
		return protobuf.NewGenerator().WithDescriptor(true)
	})
}
