package input

import (
	"testing"

	"github.com/kokizzu/kakoune/internal/editor"
	"github.com/kokizzu/kakoune/internal/sched"
)

func TestParseAutoInfo(t *testing.T) {
	tests := []struct {
		names   []string
		want    AutoInfo
		wantErr bool
	}{
		{names: nil, want: AutoInfoNone},
		{names: []string{"none"}, want: AutoInfoNone},
		{names: []string{"command"}, want: AutoInfoCommand},
		{names: []string{"command", "onkey"}, want: AutoInfoCommand | AutoInfoOnKey},
		{names: []string{" Normal "}, want: AutoInfoNormal},
		{names: []string{"bogus"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAutoInfo(tt.names)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAutoInfo(%v) err = %v", tt.names, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAutoInfo(%v) = %v, want %v", tt.names, got, tt.want)
		}
	}
}

func TestParseAutoComplete(t *testing.T) {
	got, err := ParseAutoComplete([]string{"insert", "prompt"})
	if err != nil {
		t.Fatal(err)
	}
	if got != AutoCompleteInsert|AutoCompletePrompt {
		t.Errorf("mask = %v", got)
	}
	if _, err := ParseAutoComplete([]string{"nope"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAutoInfoString(t *testing.T) {
	if got := (AutoInfoCommand | AutoInfoNormal).String(); got != "command,normal" {
		t.Errorf("String = %q", got)
	}
	if got := AutoInfoNone.String(); got != "none" {
		t.Errorf("String = %q", got)
	}
}

func TestShouldShowInfo(t *testing.T) {
	ctx := editor.NewContext(nil, nil)
	if ShouldShowInfo(AutoInfoOnKey, AutoInfoOnKey, ctx) {
		t.Error("info allowed with no client attached")
	}
	ctx.SetClient(&fakeClient{})
	if !ShouldShowInfo(AutoInfoOnKey, AutoInfoOnKey|AutoInfoCommand, ctx) {
		t.Error("info denied though category enabled and client attached")
	}
	if ShouldShowInfo(AutoInfoOnKey, AutoInfoCommand, ctx) {
		t.Error("info allowed though category disabled")
	}
}

func TestShowAndHideAutoInfo(t *testing.T) {
	ctx := editor.NewContext(nil, nil)
	client := &fakeClient{}
	ctx.SetClient(client)

	if !ShowAutoInfoIfn("t", "c", AutoInfoOnKey, AutoInfoOnKey, ctx) {
		t.Fatal("expected the box to show")
	}
	if client.infoTitle != "t" || client.infoContent != "c" {
		t.Errorf("shown %q/%q", client.infoTitle, client.infoContent)
	}

	HideAutoInfoIfn(ctx, false)
	if !client.infoVisible {
		t.Error("hide=false removed the box")
	}
	HideAutoInfoIfn(ctx, true)
	if client.infoVisible {
		t.Error("box still visible")
	}
}

func TestAutoInfoDisabledSuppressesHint(t *testing.T) {
	ctx := editor.NewContext(editor.NewBuffer(""), nil)
	client := &fakeClient{}
	ctx.SetClient(client)
	ms := sched.NewManual()
	cfg := DefaultConfig()
	cfg.AutoInfo = AutoInfoNone
	cfg.Scheduler = ms
	h := NewHandler(ctx, cfg)

	h.OnNextKeyWithAutoInfo("pick", KeymapNormal, nil, "title", "content")
	ms.FireAll()
	if client.shows != 0 {
		t.Errorf("info shown %d times with autoinfo disabled", client.shows)
	}
}
