package usecase

const (
	LogPrefixNew   = "internal.interpret.usecase.New"
	LogPrefixParse = "internal.interpret.usecase.Parse"
	LogPrefixWarm  = "internal.interpret.usecase.Warm"
)
