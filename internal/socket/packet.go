package socket

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"errors"
	"io"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Packet is the wire envelope: an event discriminator and its payload,
// JSON-encoded and zlib-compressed into a binary websocket frame.
type Packet struct {
	Event models.EventType `json:"e"`
	Data  json.RawMessage  `json:"d"`
}

var errIncompletePacket = errors.New("packet missing event or data field")

// DecodePacket inflates and parses an inbound frame. Frames without both
// envelope fields are rejected so half-formed events never reach routing.
func DecodePacket(frame []byte) (*Packet, error) {
	r, err := zlib.NewReader(bytes.NewReader(frame))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var packet Packet
	if err := json.Unmarshal(raw, &packet); err != nil {
		return nil, err
	}
	if packet.Event == "" || len(packet.Data) == 0 {
		return nil, errIncompletePacket
	}
	return &packet, nil
}

// EncodePacket deflates an outbound event for the socket.
func EncodePacket(event models.EventType, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(Packet{Event: event, Data: payload})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, 6)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
