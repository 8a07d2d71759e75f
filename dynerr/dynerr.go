// Package dynerr defines the typed, fallible error kinds produced by the solver.
//
// Fatal conditions never call os.Exit or panic from inside a running step (the source program
// does); instead they are returned as an *Error of the matching Kind, and the caller (solver.Solve)
// is responsible for triggering the emergency snapshot finalizer before propagating it further.
package dynerr

import "fmt"

// Kind identifies one of the error categories from the error handling design.
type Kind int

const (
	// InvalidMesh: element references a missing node, mixed topology families within one
	// model, or a node/element number is not unique. Checked once at init time.
	InvalidMesh Kind = iota
	// InvalidMaterial: element without a bound material at initialization time.
	InvalidMaterial
	// DegenerateElement: det(F) <= 0 at an integration point.
	DegenerateElement
	// NonConvergentReturn: radial-return Newton-Raphson + bisection failed to reach
	// |Δγ| < 1e-8 within 250 iterations.
	NonConvergentReturn
	// NonConvergentDecomposition: polar decomposition exceeded 30 Jacobi sweeps.
	NonConvergentDecomposition
	// ConfigOutOfRange: spectral radius outside [0,1], or a snapshot window with start > end.
	ConfigOutOfRange
	// BoundaryConflict: the same DOF received contradictory Dirichlet values.
	BoundaryConflict
)

func (k Kind) String() string {
	switch k {
	case InvalidMesh:
		return "InvalidMesh"
	case InvalidMaterial:
		return "InvalidMaterial"
	case DegenerateElement:
		return "DegenerateElement"
	case NonConvergentReturn:
		return "NonConvergentReturn"
	case NonConvergentDecomposition:
		return "NonConvergentDecomposition"
	case ConfigOutOfRange:
		return "ConfigOutOfRange"
	case BoundaryConflict:
		return "BoundaryConflict"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every fallible operation in this module.
// Elem and IP are -1 when not applicable. Bracket records the [γmin, γmax] history for
// NonConvergentReturn diagnostics, as consecutive (γmin, γmax) pairs, one pair per iteration;
// it is nil for every other kind.
type Error struct {
	Kind    Kind
	Message string
	Elem    int
	IP      int
	Bracket []float64
	Dt      float64
}

func (e *Error) Error() string {
	if e.Elem < 0 && e.IP < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (elem=%d ip=%d dt=%g)", e.Kind, e.Message, e.Elem, e.IP, e.Dt)
}

// Is supports errors.Is(err, dynerr.Of(dynerr.InvalidMesh)) style comparisons by matching on
// Kind whenever the target is itself a *Error; the target's other fields are ignored.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a plain *Error with no element/IP context (used for init-time validation).
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Elem: -1, IP: -1}
}

// AtIP builds an *Error anchored to a specific element / integration point, used for the
// three per-step fatal kinds (DegenerateElement, NonConvergentReturn, NonConvergentDecomposition).
func AtIP(kind Kind, elem, ip int, dt float64, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Elem: elem, IP: ip, Dt: dt}
}

// Of returns a sentinel suitable for errors.Is(err, dynerr.Of(dynerr.InvalidMesh)).
func Of(kind Kind) *Error {
	return &Error{Kind: kind}
}
