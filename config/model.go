package config

type Config struct {
	LogLevel    string  `mapstructure:"LogLevel"`
	Interval    int     `mapstructure:"Interval"`
	Timeout     int     `mapstructure:"Timeout"`
	CheckIPURL  string  `mapstructure:"CheckIPURL"`
	APIBaseURL  string  `mapstructure:"APIBaseURL"`
	VerifyToken bool    `mapstructure:"VerifyToken"`
	Domain      Input   `mapstructure:"Domain"`
	Email       Input   `mapstructure:"Email"`
	Token       Input   `mapstructure:"Token"`
	Notify      *Notify `mapstructure:"Notify"`
}

// Input is a value given either inline or as a path to a file holding it.
type Input struct {
	Value string `mapstructure:"Value"`
	File  string `mapstructure:"File"`
}

type Notify struct {
	Enable   bool      `mapstructure:"Enable"`
	Telegram *Telegram `mapstructure:"Telegram"`
	PushPlus *PushPlus `mapstructure:"PushPlus"`
}

type Telegram struct {
	ChatID      int64  `mapstructure:"ChatID"`
	Token       string `mapstructure:"Token"`
	APIEndpoint string `mapstructure:"APIEndpoint"`
}

type PushPlus struct {
	Token   string `mapstructure:"Token"`
	APIHost string `mapstructure:"APIHost"`
}
