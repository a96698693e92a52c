package mail

type WelcomeEmailData struct {
	ReferralCode string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
