package event

const OTPIssuedDestination string = "otp_issued"
const OTPIssuedConsumerNotification string = "otp_issued_notification"

type OTPIssuedMessage struct {
	EventID      int64  `json:"event_id"`
	EmailAddress string `json:"email_address"`
	OTP          string `json:"otp"`
}
