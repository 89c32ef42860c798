package multiclient

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
)

// Binding records a successful claim/release binding on one provided port.
type Binding struct {
	Port    string
	Claim   model.Event
	Release model.Event
	// GrantedReply is the fully qualified enum value that grants a claim,
	// e.g. IAccess.Result.Ok.
	GrantedReply model.ScopedName
}

// Bind attempts to bind the policy against one provided port. A candidate
// whose name differs from the policy's configured port is not applicable:
// Bind returns (nil, nil). Any violation on the matching port fails with a
// *config.MultiClientConfigError.
func Bind(policy config.MultiClientPolicy, candidateName string, iface *model.Interface) (*Binding, error) {
	if candidateName != policy.Port() {
		return nil, nil
	}

	claim, err := iface.Event(policy.ClaimEvent())
	if err != nil {
		return nil, &config.MultiClientConfigError{
			Port:   policy.Port(),
			Event:  policy.ClaimEvent(),
			Reason: "claim event not found on the port's interface",
		}
	}

	enum, err := iface.ResolveEnum(claim.ReturnType)
	if err != nil {
		return nil, &config.MultiClientConfigError{
			Port:   policy.Port(),
			Event:  policy.ClaimEvent(),
			Reason: fmt.Sprintf("only an enumerated return type is supported (found %s)", claim.ReturnType),
		}
	}

	reply := policy.GrantedReply()
	member := reply.Leaf()
	if scope := reply.Scope(); !enumMatchesScope(enum, scope) {
		return nil, &config.MultiClientConfigError{
			Port:   policy.Port(),
			Event:  policy.ClaimEvent(),
			Reason: fmt.Sprintf("reply value %s does not reference return type %s", reply, enum.Name),
		}
	}
	if !enum.HasMember(member) {
		return nil, &config.MultiClientConfigError{
			Port:   policy.Port(),
			Event:  policy.ClaimEvent(),
			Reason: fmt.Sprintf("reply value %s is not a member of enum %s", reply, enum.Name),
		}
	}

	release, err := iface.Event(policy.ReleaseEvent())
	if err != nil {
		return nil, &config.MultiClientConfigError{
			Port:   policy.Port(),
			Event:  policy.ReleaseEvent(),
			Reason: "release event not found on the port's interface",
		}
	}

	qualified := append(append(model.ScopedName{}, enum.Name...), member)
	Logger().Debug("bound multi-client port",
		zap.String("port", candidateName),
		zap.String("claim", claim.Name),
		zap.String("release", release.Name),
		zap.String("reply", qualified.String()))

	return &Binding{
		Port:         candidateName,
		Claim:        claim,
		Release:      release,
		GrantedReply: qualified,
	}, nil
}

// enumMatchesScope accepts a reply scope that names the enum fully
// qualified or by its leaf name.
func enumMatchesScope(enum model.Enum, scope model.ScopedName) bool {
	if enum.Name.Equal(scope) {
		return true
	}
	return len(scope) == 1 && enum.Name.Leaf() == scope[0]
}
