package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MessageType identifies the semantic meaning of a message
type MessageType uint8

const (
	// Control messages
	MsgHeartbeat  MessageType = 0x01
	MsgDisconnect MessageType = 0x03

	// Relay messages
	MsgPublish MessageType = 0x10 // Fire-and-forget topic message
	MsgRequest MessageType = 0x11 // Expects exactly one MsgReply with matching Ref
	MsgReply   MessageType = 0x12 // Answer to a MsgRequest; Ref holds the request Seq
)

// Header precedes every message on the wire
// Fixed 18 bytes: [Type:1][Flags:1][Seq:4][Ack:4][Ref:4][Len:4]
const HeaderSize = 18

// MaxPayloadSize bounds a single message body
const MaxPayloadSize = 1 << 20

// Header flags
const (
	FlagNone  uint8 = 0x00
	FlagError uint8 = 0x01 // Reply payload is an error string
)

// ErrPayloadTooLarge is returned when a payload exceeds MaxPayloadSize
var ErrPayloadTooLarge = errors.New("payload exceeds maximum size")

// Message represents a framed network message
type Message struct {
	Type    MessageType
	Flags   uint8
	Seq     uint32 // Sender's sequence number
	Ack     uint32 // Last received sequence from peer
	Ref     uint32 // Correlates a reply with its request
	Payload []byte
}

// Encode writes the message to a writer with length prefix
func (m *Message) Encode(w io.Writer) error {
	payloadLen := len(m.Payload)
	if payloadLen > MaxPayloadSize {
		return ErrPayloadTooLarge
	}

	header := make([]byte, HeaderSize)
	header[0] = byte(m.Type)
	header[1] = m.Flags
	binary.BigEndian.PutUint32(header[2:6], m.Seq)
	binary.BigEndian.PutUint32(header[6:10], m.Ack)
	binary.BigEndian.PutUint32(header[10:14], m.Ref)
	binary.BigEndian.PutUint32(header[14:18], uint32(payloadLen))

	if _, err := w.Write(header); err != nil {
		return err
	}

	if payloadLen > 0 {
		if _, err := w.Write(m.Payload); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads a message from a reader
func Decode(r io.Reader) (*Message, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	payloadLen := binary.BigEndian.Uint32(header[14:18])
	if payloadLen > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, payloadLen)
	}

	m := &Message{
		Type:  MessageType(header[0]),
		Flags: header[1],
		Seq:   binary.BigEndian.Uint32(header[2:6]),
		Ack:   binary.BigEndian.Uint32(header[6:10]),
		Ref:   binary.BigEndian.Uint32(header[10:14]),
	}

	if payloadLen > 0 {
		m.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, m.Payload); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewMessage creates a message with the given type and payload
func NewMessage(t MessageType, payload []byte) *Message {
	return &Message{
		Type:    t,
		Flags:   FlagNone,
		Payload: payload,
	}
}

// NewReply creates a reply to the request with sequence ref
func NewReply(ref uint32, payload []byte) *Message {
	return &Message{
		Type:    MsgReply,
		Ref:     ref,
		Payload: payload,
	}
}

// NewErrorReply creates a reply carrying an error message
func NewErrorReply(ref uint32, errMsg string) *Message {
	return &Message{
		Type:    MsgReply,
		Flags:   FlagError,
		Ref:     ref,
		Payload: []byte(errMsg),
	}
}
