package detectors

import (
	"github.com/castlekit/castle/internal/rules"
	"github.com/castlekit/castle/internal/types"
)

// SecretTypeCastleOpenClaw labels everything the builtin Castle/OpenClaw
// detector reports.
const SecretTypeCastleOpenClaw = "Castle/OpenClaw Secret"

// CastleOpenClaw detects Castle and OpenClaw specific secrets: reward
// tokens, hardcoded gateway token values, and remote WebSocket gateway URLs.
func CastleOpenClaw() rules.Detector {
	return rules.Detector{
		SecretType: SecretTypeCastleOpenClaw,
		Rules: []rules.Rule{
			{
				ID: "openclaw_reward_token",
				// Real reward tokens are 32+ hex chars after the prefix.
				Pattern:    `rew_[a-f0-9]{32,}`,
				Severity:   types.SevHigh,
				Confidence: 0.95,
			},
			{
				ID:      "openclaw_gateway_token",
				Pattern: `OPENCLAW_GATEWAY_TOKEN\s*=\s*["']?[^\s"']{8,}`,
				// Env-var references like ${VAR} are not leaks. Anchored so
				// only values beginning with the interpolation marker are
				// excluded, not values that merely contain one.
				ExcludePatterns: []string{`^OPENCLAW_GATEWAY_TOKEN\s*=\s*["']?\$\{`},
				Severity:        types.SevHigh,
				Confidence:      0.9,
			},
			{
				ID:           "openclaw_gateway_url",
				Pattern:      `wss?://[a-zA-Z0-9][\w.\-:]+`,
				ExcludeHosts: rules.LoopbackHosts(),
				Severity:     types.SevMed,
				Confidence:   0.7,
			},
		},
	}
}
