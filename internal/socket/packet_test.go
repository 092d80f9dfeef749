package socket

import (
	"bytes"
	"compress/zlib"
	"encoding/json"
	"testing"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func TestPacketRoundTrip(t *testing.T) {
	data := models.PlayerChatData{
		Player:  models.SimplePlayer{ID: "p1", Name: "Alice"},
		Channel: models.ChatChannelGlobal,
		Message: "hello",
	}

	frame, err := EncodePacket(models.EventPlayerChat, data)
	if err != nil {
		t.Fatalf("EncodePacket: %v", err)
	}

	packet, err := DecodePacket(frame)
	if err != nil {
		t.Fatalf("DecodePacket: %v", err)
	}
	if packet.Event != models.EventPlayerChat {
		t.Errorf("Event = %q; expected PLAYER_CHAT", packet.Event)
	}

	var decoded models.PlayerChatData
	if err := json.Unmarshal(packet.Data, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded != data {
		t.Errorf("payload = %+v; expected %+v", decoded, data)
	}
}

func TestDecodePacketRejectsGarbage(t *testing.T) {
	if _, err := DecodePacket([]byte{0x00, 0x01, 0x02}); err == nil {
		t.Error("expected error for non-zlib frame")
	}
}

func TestDecodePacketRejectsIncompleteEnvelope(t *testing.T) {
	deflate := func(s string) []byte {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		w.Write([]byte(s))
		w.Close()
		return buf.Bytes()
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing data", `{"e":"MATCH_START"}`},
		{"missing event", `{"d":{"participants":[]}}`},
		{"empty object", `{}`},
	}
	for _, test := range tests {
		if _, err := DecodePacket(deflate(test.body)); err == nil {
			t.Errorf("%s: expected rejection", test.name)
		}
	}
}

func TestDecodePacketRejectsInvalidJSON(t *testing.T) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write([]byte(`{"e":`))
	w.Close()

	if _, err := DecodePacket(buf.Bytes()); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
