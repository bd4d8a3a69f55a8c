package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/cfddns/app/ddns"
	"github.com/Septrum101/cfddns/common/httpclient"
	"github.com/Septrum101/cfddns/config"
)

var ErrAlreadyRunning = errors.New("an update is already running")

// cron messages, skipped runs included, go through logrus
var cronLogger = cron.VerbosePrintfLogger(log.StandardLogger())

func New(c *config.Config) (*Server, error) {
	// init log level
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(l)

	params, err := config.ResolveParameters(c)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(c.Notify)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
		interval:   c.Interval,
		timeout:    time.Second * time.Duration(c.Timeout),
		verify:     c.VerifyToken,
		token:      params.Token,
		apiBaseURL: c.APIBaseURL,
		notifier:   notifier,
	}
	s.updater = ddns.New(params, c.CheckIPURL, c.APIBaseURL, httpclient.WithTimeout(s.timeout))

	log.Debugf("Log level: %s (Interval: %ds, Notifiers: %d)", c.LogLevel, c.Interval, notifier.Len())
	return s, nil
}

// RunOnce performs a single update. Runs never overlap: a call made while
// another is in flight returns ErrAlreadyRunning without touching the record.
func (s *Server) RunOnce(ctx context.Context) (*ddns.Result, error) {
	if !s.cronRunning.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer s.cronRunning.Store(false)

	if s.verify {
		if err := ddns.VerifyToken(ctx, s.token, s.apiBaseURL, s.timeout); err != nil {
			return nil, err
		}
	}

	res, err := s.updater.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("[%s] %w", s.updater.Domain(), err)
	}

	if res.Updated {
		s.pushMessage(res.IP)
	}
	return res, nil
}

// Start runs an update now and then every interval seconds.
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()

	if s.interval <= 0 {
		return fmt.Errorf("interval must be positive to schedule updates, got %d", s.interval)
	}

	// On init start, do once check
	defer s.task()
	s.running = true

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.interval), s.task); err != nil {
		return err
	}

	s.cron.Start()
	log.Warnln(config.AppName, "Started")
	return nil
}

func (s *Server) task() {
	if _, err := s.RunOnce(context.Background()); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			log.Warn(err)
			return
		}
		log.Error(err)
	}
}

// push message
func (s *Server) pushMessage(ip string) {
	if s.notifier.Len() == 0 {
		return
	}

	if err := s.notifier.Webhook(s.updater.Domain(), fmt.Sprintf("IP changed: %s", ip)); err != nil {
		log.Error(err)
	} else {
		log.Infof("[%s] Push message success", s.updater.Domain())
	}
}

func (s *Server) Close() {
	s.Lock()
	defer s.Unlock()

	log.Infoln(config.AppName, "Closing..")
	if s.running {
		<-s.cron.Stop().Done()
	}
	s.notifier.Release()
	s.running = false
}
