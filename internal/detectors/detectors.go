package detectors

import (
	"github.com/castlekit/castle/internal/registry"
	"github.com/castlekit/castle/internal/rules"
)

// Builtin returns the detector definitions that ship with the engine, in
// registration order.
func Builtin() []rules.Detector {
	return []rules.Detector{
		CastleOpenClaw(),
	}
}

// IDs lists the rule identifiers of every builtin detector.
func IDs() []string {
	return []string{
		"openclaw_reward_token",
		"openclaw_gateway_token",
		"openclaw_gateway_url",
	}
}

// NewRegistry builds a registry pre-populated with the builtin detectors.
func NewRegistry() (*registry.Registry, error) {
	reg := registry.New()
	for _, d := range Builtin() {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
