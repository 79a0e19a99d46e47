package mail

import (
	"context"
	"fmt"
	"time"

	"gymmate/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// SparkPostSender 通过 SparkPost 模板接口发送注册/找回密码等邮件
type SparkPostSender struct {
	client *resty.Client
	cfg    config.MailConfig
}

func NewSparkPostSender(cfg config.MailConfig) *SparkPostSender {
	client := resty.New().
		SetBaseURL(cfg.APIBase).
		SetTimeout(10*time.Second).
		SetHeader("Authorization", cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &SparkPostSender{client: client, cfg: cfg}
}

type transmissionBody struct {
	Content    transmissionContent     `json:"content"`
	Substitute map[string]string       `json:"substitution_data,omitempty"`
	Recipients []transmissionRecipient `json:"recipients"`
}

type transmissionContent struct {
	TemplateID string `json:"template_id"`
	From       string `json:"from"`
}

type transmissionRecipient struct {
	Address string `json:"address"`
}

func (s *SparkPostSender) Send(ctx context.Context, recipient string, template string, data map[string]string) error {
	body := transmissionBody{
		Content: transmissionContent{
			TemplateID: template,
			From:       fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromAddress),
		},
		Substitute: data,
		Recipients: []transmissionRecipient{{Address: recipient}},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/transmissions")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail send failed: %s", resp.Status())
	}
	return nil
}
