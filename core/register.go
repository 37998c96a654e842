package core

import (
	"sync"

	"github.com/signalsfoundry/solarwcs/registry"
)

// TranslatorName is the name the solar translators register under.
const TranslatorName = "solar"

var registerDefault sync.Once

// Register appends HeaderToFrame and FrameToHeader to r's translator lists.
// Call it once per registry during startup.
func Register(r *registry.Registry) {
	r.AddHeaderTranslator(TranslatorName, HeaderToFrame)
	r.AddFrameTranslator(TranslatorName, FrameToHeader)
}

// RegisterDefault registers the solar translators into registry.Default()
// and returns it. Repeated calls register only once.
func RegisterDefault() *registry.Registry {
	registerDefault.Do(func() { Register(registry.Default()) })
	return registry.Default()
}
