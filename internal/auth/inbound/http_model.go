package inbound

type GenerateOTPRequest struct {
	EmailAddress string `json:"email_address"`
}

type GenerateOTPResponse struct {
	EmailAddress string `json:"email_address"`
}

func (GenerateOTPResponse) Message() string {
	return "We have sent a one-time password to your email address."
}

type VerifyOTPRequest struct {
	EmailAddress string `json:"email_address"`
	UserOTP      string `json:"user_otp"`
}

type VerifyOTPResponse struct {
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

func (v VerifyOTPResponse) Message() string {
	switch v.Status {
	case "verified":
		return "OTP verified successfully."
	case "rejected":
		return "The OTP you entered is incorrect."
	default:
		return "No pending OTP found for this email address."
	}
}
