package pushplus

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

const DefaultAPIHost = "https://www.pushplus.plus/send/"

type PushPlus struct {
	Token   string
	APIHost string
}

type pushPlusResp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (p *PushPlus) Webhook(title string, content string) error {
	api := p.APIHost
	if api == "" {
		api = DefaultAPIHost
	}

	rtn := &pushPlusResp{}
	resp, err := resty.New().R().SetResult(rtn).SetBody(map[string]string{
		"token":   p.Token,
		"title":   title,
		"content": content,
	}).ForceContentType("application/json").Post(api)
	if err != nil {
		return err
	}

	switch rtn.Code {
	case 0:
		return fmt.Errorf("[PushPlus] %s", resp.String())
	case 200:
		return nil
	default:
		return fmt.Errorf("[PushPlus] %s", rtn.Msg)
	}
}
