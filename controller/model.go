package controller

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Septrum101/cfddns/app/ddns"
	"github.com/Septrum101/cfddns/common/notify"
)

type Server struct {
	sync.Mutex
	running     bool
	interval    int
	timeout     time.Duration
	verify      bool
	token       string
	apiBaseURL  string
	updater     *ddns.Updater
	notifier    *notify.Multi
	cron        *cron.Cron
	cronRunning atomic.Bool
}
