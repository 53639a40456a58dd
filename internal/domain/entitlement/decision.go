package entitlement

// Reason explains an access decision
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonPublicContent        Reason = "public_content"
	ReasonGranted              Reason = "granted"
	ReasonAccountInactive      Reason = "account_inactive"
	ReasonNoGrant              Reason = "no_grant"
	ReasonGrantPending         Reason = "grant_pending"
	ReasonGrantExpired         Reason = "grant_expired"
	ReasonGrantRevoked         Reason = "grant_revoked"
	ReasonGrantInactive        Reason = "grant_inactive"
	ReasonSubscriptionInactive Reason = "subscription_inactive"
)

func (r Reason) String() string {
	return string(r)
}

// Decision is the outcome of an access check. A denial is a value, not an error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

func allow(r Reason) Decision {
	return Decision{Allowed: true, Reason: r}
}

func deny(r Reason) Decision {
	return Decision{Allowed: false, Reason: r}
}
