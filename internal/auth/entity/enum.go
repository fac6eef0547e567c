package entity

type VerifyStatus int16

const (
	// VerifyStatusUnknown is mean status is not known / not set.
	VerifyStatusUnknown VerifyStatus = 0

	// VerifyStatusVerified mean the submitted code matched and the session was consumed.
	VerifyStatusVerified VerifyStatus = 1

	// VerifyStatusRejected mean a session exists but the submitted code did not match.
	VerifyStatusRejected VerifyStatus = 2

	// VerifyStatusNoSession mean no pending session exists for the email address.
	VerifyStatusNoSession VerifyStatus = 3
)

func (vs VerifyStatus) String() string {
	switch vs {
	case VerifyStatusVerified:
		return "verified"
	case VerifyStatusRejected:
		return "rejected"
	case VerifyStatusNoSession:
		return "no_session"
	default:
		return "unknown"
	}
}
