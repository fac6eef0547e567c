package entity

// Session is the pending OTP verification state for one email address.
//
// The JSON field names are part of the stored record format and must stay
// stable across releases, old records must keep decoding.
type Session struct {
	OTP          string `json:"OTP"`
	EmailAddress string `json:"email_address"`
	SecretKey    string `json:"Secret_key"`
}
