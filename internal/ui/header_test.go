package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func TestBackendStatus_Label(t *testing.T) {
	tests := []struct {
		status BackendStatus
		want   string
	}{
		{StatusOnline, "Çevrimiçi"},
		{StatusOffline, "Çevrimdışı"},
		{StatusUnknown, "Bağlanıyor"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestHeader_View(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		title   string
		status  BackendStatus
		want    []string
		notWant []string
	}{
		{
			name:   "online without session",
			width:  80,
			status: StatusOnline,
			want:   []string{"ATTT Assistant", "● Çevrimiçi"},
		},
		{
			name:   "offline with session",
			width:  100,
			title:  "Hafta sonu planı",
			status: StatusOffline,
			want:   []string{"ATTT Assistant", "Çevrimdışı", "Hafta sonu planı"},
		},
		{
			name:    "long title is shortened",
			width:   50,
			title:   strings.Repeat("uzun başlık ", 10),
			status:  StatusOnline,
			want:    []string{"ATTT Assistant", "…"},
			notWant: []string{strings.Repeat("uzun başlık ", 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader()
			h.SetWidth(tt.width)
			h.SetSessionTitle(tt.title)
			h.SetStatus(tt.status)

			view := ansi.Strip(h.View())
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("view %q missing %q", view, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("view should not contain %q", w)
				}
			}
			if got := runewidth.StringWidth(view); got != tt.width {
				t.Errorf("view width = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestHeader_Status(t *testing.T) {
	h := NewHeader()
	if h.Status() != StatusUnknown {
		t.Errorf("initial status = %v, want unknown", h.Status())
	}
	h.SetStatus(StatusOffline)
	if h.Status() != StatusOffline {
		t.Errorf("status = %v, want offline", h.Status())
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#2563EB")
	if r != 0x25 || g != 0x63 || b != 0xEB {
		t.Errorf("parseHexColor = %d,%d,%d", r, g, b)
	}
	r, g, b = parseHexColor("nope")
	if r != 0 || g != 0 || b != 0 {
		t.Error("invalid input should yield zeros")
	}
}
