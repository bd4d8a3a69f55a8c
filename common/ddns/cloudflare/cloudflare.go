package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/cfddns/common/httpclient"
)

const mailHeader = "X-Auth-Email"

var (
	ErrDNSZoneNotFound   = errors.New("dns zone not found")
	ErrDNSRecordNotFound = errors.New("dns record not found")
)

type resultList[T any] struct {
	Result []T `json:"result"`
}

type resultSingle[T any] struct {
	Result T `json:"result"`
}

// DNSZone is a Cloudflare zone.
type DNSZone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DNSRecord is a Cloudflare DNS record. ID addresses the record and is never
// part of an update payload.
type DNSRecord struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Comment *string `json:"comment"`
	Name    string  `json:"name"`
	Type    *string `json:"type"`
}

// recordPayload is the body of a record update.
type recordPayload struct {
	Content string  `json:"content"`
	Comment *string `json:"comment,omitempty"`
	Name    string  `json:"name"`
	Type    *string `json:"type,omitempty"`
}

func (r *DNSRecord) String() string {
	var comment, typ string
	if r.Comment != nil {
		comment = *r.Comment
	}
	if r.Type != nil {
		typ = *r.Type
	}
	return fmt.Sprintf("{ID:%s Name:%s Type:%s Content:%s Comment:%q}", r.ID, r.Name, typ, r.Content, comment)
}

// Cloudflare implementation over the v4 REST API.
type Cloudflare struct {
	client  *httpclient.Client
	baseURL string
}

// AuthHeaders are the credentials sent with every API call.
func AuthHeaders(email string, token string) []httpclient.Header {
	return []httpclient.Header{
		{Name: "Authorization", Value: "Bearer " + token, Sensitive: true},
		{Name: mailHeader, Value: email, Sensitive: true},
	}
}

// New builds an authenticated API client. It fails when email or token
// cannot be carried in a header.
func New(email string, token string, baseURL string, opts ...httpclient.Option) (*Cloudflare, error) {
	client, err := httpclient.NewWithHeaders(AuthHeaders(email, token), opts...)
	if err != nil {
		return nil, err
	}

	return &Cloudflare{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// GetZone returns the first zone named domain.
func (cf *Cloudflare) GetZone(ctx context.Context, domain string) (*DNSZone, error) {
	log.Info("Start requesting zone...")
	res, err := httpclient.Get[resultList[DNSZone]](ctx, cf.client, cf.baseURL+"/zones")
	if err != nil {
		return nil, err
	}

	for i := range res.Body.Result {
		if res.Body.Result[i].Name == domain {
			zone := res.Body.Result[i]
			log.Infof("Zone found: %+v", zone)
			return &zone, nil
		}
	}
	return nil, fmt.Errorf("[%s] %w", domain, ErrDNSZoneNotFound)
}

// GetRecord returns the first record of zoneID named domain.
func (cf *Cloudflare) GetRecord(ctx context.Context, zoneID string, domain string) (*DNSRecord, error) {
	log.Info("Start requesting record...")
	url := fmt.Sprintf("%s/zones/%s/dns_records", cf.baseURL, zoneID)
	res, err := httpclient.Get[resultList[DNSRecord]](ctx, cf.client, url)
	if err != nil {
		return nil, err
	}

	for i := range res.Body.Result {
		if res.Body.Result[i].Name == domain {
			record := res.Body.Result[i]
			log.Infof("Record found: %s", &record)
			return &record, nil
		}
	}
	return nil, fmt.Errorf("[%s] %w", domain, ErrDNSRecordNotFound)
}

// PutRecord overwrites the record and returns it as stored by Cloudflare.
func (cf *Cloudflare) PutRecord(ctx context.Context, zoneID string, record *DNSRecord) (*DNSRecord, error) {
	url := fmt.Sprintf("%s/zones/%s/dns_records/%s", cf.baseURL, zoneID, record.ID)
	body, err := httpclient.Marshal(recordPayload{
		Content: record.Content,
		Comment: record.Comment,
		Name:    record.Name,
		Type:    record.Type,
	})
	if err != nil {
		return nil, err
	}

	log.Infof("Start updating record with body %s...", body)
	res, err := httpclient.Put[resultSingle[DNSRecord]](ctx, cf.client, url, body)
	if err != nil {
		return nil, err
	}

	log.Infof("Record updated: %s", &res.Body.Result)
	return &res.Body.Result, nil
}
