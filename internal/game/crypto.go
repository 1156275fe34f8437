package game

import (
	"github.com/lonng/nano/pipeline"
	"github.com/lonng/nano/session"
	"github.com/xxtea/xxtea-go/xxtea"
)

// crypto 消息体对称加密管道
type crypto struct {
	key []byte
}

func newCrypto(key string) *crypto {
	if key == "" {
		key = "tonpu-riichi"
	}
	return &crypto{key: []byte(key)}
}

func (c *crypto) inbound(s *session.Session, msg *pipeline.Message) error {
	msg.Data = xxtea.Decrypt(msg.Data, c.key)
	return nil
}

func (c *crypto) outbound(s *session.Session, msg *pipeline.Message) error {
	msg.Data = xxtea.Encrypt(msg.Data, c.key)
	return nil
}
