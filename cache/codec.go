package cache

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns cached payloads into bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, dst any) error
}

// MsgpackCodec encodes payloads with MessagePack.
type MsgpackCodec struct{}

// Marshal implements Codec.
func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal implements Codec.
func (MsgpackCodec) Unmarshal(data []byte, dst any) error {
	return msgpack.Unmarshal(data, dst)
}
