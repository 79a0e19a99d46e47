package consts

const (
	MimePrefixImage = "image"

	DefaultAvatarObject = "default_avatar.png"
)

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// 邮件模板名称
const (
	MailTemplateWelcome        = "welcome"
	MailTemplateForgotPassword = "forgot-password"
	MailTemplatePasswordReset  = "password-reset"
)
