package domain

// Principal is the authenticated caller of a core operation. It is produced
// by the credential issuer and passed explicitly into every gated operation.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Authenticated reports whether the principal carries a role claim.
func (p Principal) Authenticated() bool {
	return p.Role != ""
}

// SystemPrincipal is used by maintenance jobs that run outside a request.
func SystemPrincipal() Principal {
	return Principal{UserID: "system", Role: RoleAdmin}
}

// Resources and actions understood by the authorizer.
const (
	ResourceVisitor     = "visitor"
	ResourceAppointment = "appointment"
	ResourcePass        = "pass"
	ResourceCheckLog    = "checklog"
	ResourceReport      = "report"
	ResourceUser        = "user"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionApprove = "approve"
	ActionDelete  = "delete"
	ActionIssue   = "issue"
	ActionVerify  = "verify"
	ActionSweep   = "sweep"
	ActionRecord  = "record"
	ActionScan    = "scan"
	ActionManage  = "manage"
)
