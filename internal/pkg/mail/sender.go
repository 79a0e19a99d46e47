package mail

import (
	"context"
)

// Sender 事务性邮件发送器，模板替换数据由调用方给出
type Sender interface {
	Send(ctx context.Context, recipient string, template string, data map[string]string) error
}
