package realtime

import (
	"testing"
)

func TestParseFrameAuthAck(t *testing.T) {
	f, err := ParseFrame([]byte(`{"status":"authenticated"}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if !f.IsAuthAck() {
		t.Error("Frame should be an auth ack")
	}
}

func TestParseFrameEvent(t *testing.T) {
	f, err := ParseFrame([]byte(`{"event":"post_updated","data":{"post_id":"p1","likes_count":4}}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if f.Event != EventPostUpdated {
		t.Errorf("Event = %s, want post_updated", f.Event)
	}

	var p PostUpdatePayload
	if err := decodePayload(f.Data, &p); err != nil {
		t.Fatalf("decodePayload failed: %v", err)
	}
	if p.PostID != "p1" || p.LikesCount != 4 {
		t.Errorf("Payload = %+v, want post_id=p1 likes_count=4", p)
	}
}

func TestParseFrameBareKeepalive(t *testing.T) {
	for _, raw := range []string{"ping", "pong", " pong\n"} {
		f, err := ParseFrame([]byte(raw))
		if err != nil {
			t.Fatalf("ParseFrame(%q) failed: %v", raw, err)
		}
		if !f.IsPing() && !f.IsPong() {
			t.Errorf("ParseFrame(%q) should yield a keepalive frame", raw)
		}
	}
}

func TestParseFrameJSONKeepalive(t *testing.T) {
	f, err := ParseFrame([]byte(`{"type":"pong"}`))
	if err != nil {
		t.Fatalf("ParseFrame failed: %v", err)
	}
	if !f.IsPong() {
		t.Error("Frame should be a pong")
	}
}

func TestParseFrameMalformed(t *testing.T) {
	if _, err := ParseFrame([]byte(`{not json`)); err == nil {
		t.Error("ParseFrame should fail on malformed input")
	}
}

func TestDecodePayloadEmptyData(t *testing.T) {
	var p PostUpdatePayload
	if err := decodePayload(nil, &p); err == nil {
		t.Error("decodePayload should fail on an event frame with no data")
	}
}
