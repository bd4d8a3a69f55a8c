package ddns

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/cfddns/common/ddns/cloudflare"
	"github.com/Septrum101/cfddns/common/httpclient"
	"github.com/Septrum101/cfddns/common/myip"
	"github.com/Septrum101/cfddns/config"
)

// RecordComment marks records written by the updater.
const RecordComment = "Updated by cfddns"

type Updater struct {
	params     config.Parameters
	checkIPURL string
	apiBaseURL string
	httpOpts   []httpclient.Option
}

// Result describes one completed run.
type Result struct {
	IP      string
	Updated bool
	Record  *cloudflare.DNSRecord
}

func New(params config.Parameters, checkIPURL string, apiBaseURL string, opts ...httpclient.Option) *Updater {
	return &Updater{
		params:     params,
		checkIPURL: checkIPURL,
		apiBaseURL: apiBaseURL,
		httpOpts:   opts,
	}
}

func (u *Updater) Domain() string {
	return u.params.Domain
}

// Run points the record named after the domain at the current public IP.
// It writes nothing when the record is already up to date. Every error is
// returned as is; nothing is retried.
func (u *Updater) Run(ctx context.Context) (*Result, error) {
	ip, err := myip.Fetch(ctx, httpclient.New(u.httpOpts...), u.checkIPURL)
	if err != nil {
		return nil, err
	}

	cf, err := cloudflare.New(u.params.Email, u.params.Token, u.apiBaseURL, u.httpOpts...)
	if err != nil {
		return nil, err
	}

	zone, err := cf.GetZone(ctx, u.params.Domain)
	if err != nil {
		return nil, err
	}

	record, err := cf.GetRecord(ctx, zone.ID, u.params.Domain)
	if err != nil {
		return nil, err
	}

	if ip == record.Content {
		log.Infof("Current ip %s matches record's ip %s, skipping update.", ip, record.Content)
		return &Result{IP: ip, Record: record}, nil
	}

	log.Infof("The current ip %s does not match the record's ip %s", ip, record.Content)
	comment := RecordComment
	record.Content = ip
	record.Comment = &comment

	updated, err := cf.PutRecord(ctx, zone.ID, record)
	if err != nil {
		return nil, err
	}

	return &Result{IP: ip, Updated: true, Record: updated}, nil
}
