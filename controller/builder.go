package controller

import (
	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/cfddns/common/notify"
	"github.com/Septrum101/cfddns/common/notify/pushplus"
	"github.com/Septrum101/cfddns/common/notify/telegram"
	"github.com/Septrum101/cfddns/config"
)

func buildNotifier(c *config.Notify) (*notify.Multi, error) {
	var notifiers []notify.Notify

	if c != nil && c.Enable {
		if c.Telegram != nil {
			notifiers = append(notifiers, &telegram.Telegram{
				ChatID:      c.Telegram.ChatID,
				Token:       c.Telegram.Token,
				APIEndpoint: c.Telegram.APIEndpoint,
			})
		}
		if c.PushPlus != nil {
			notifiers = append(notifiers, &pushplus.PushPlus{
				Token:   c.PushPlus.Token,
				APIHost: c.PushPlus.APIHost,
			})
		}
		if len(notifiers) == 0 {
			log.Warn("Notify is enabled but no provider is configured")
		}
	}

	return notify.NewMulti(notifiers...)
}
