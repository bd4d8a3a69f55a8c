package config

import (
	"fmt"
)

var (
	version = "dev"
	AppName = "cfddns"
	intro   = "A Cloudflare dynamic DNS updater that keeps a record pointed at your public IP."
	date    = "unknown"
)

func ShowVersion() {
	fmt.Printf("%s %s, built at %s\n%s\n", AppName, version, date, intro)
}
