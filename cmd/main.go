package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/Septrum101/cfddns/config"
	"github.com/Septrum101/cfddns/controller"
)

func main() {
	fs := config.NewFlagSet(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	if printVersion, _ := fs.GetBool("version"); printVersion {
		config.ShowVersion()
		return
	}

	// init config
	v, err := config.New(fs)
	if err != nil {
		log.Fatal(err)
	}
	c, err := config.Load(v)
	if err != nil {
		log.Fatal(err)
	}

	s, err := controller.New(c)
	if err != nil {
		log.Fatal(err)
	}

	if c.Interval == 0 {
		defer s.Close()
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.Close()
			log.Fatal(err)
		}
		return
	}

	// start service
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}

	running := &runningService{svc: s}

	// hot reload configure
	if v.ConfigFileUsed() != "" {
		lastTime := time.Now()
		v.OnConfigChange(func(e fsnotify.Event) {
			if time.Now().After(lastTime.Add(time.Second * 3)) {
				log.Println("Config file changed:", e.Name)
				newConf, err := config.Load(v)
				if err != nil {
					log.Error(err)
					return
				}
				newServer, err := controller.New(newConf)
				if err != nil {
					log.Error(err)
					return
				}
				if newConf.Interval == 0 {
					log.Error("Interval cannot be set to 0 while running, keeping the current service")
					newServer.Close()
					return
				}

				// release server resource
				if err := running.replace(newServer); err != nil {
					log.Error(err)
				}
			}
			lastTime = time.Now()
		})
		v.WatchConfig()
	}

	// Running backend
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals
	running.Close()
}
