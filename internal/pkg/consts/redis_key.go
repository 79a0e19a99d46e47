package consts

const (
	TokenBlacklistKey = "token:blacklist:"
)
