package model

import "testing"

func TestNewParsesProviderSpecs(t *testing.T) {
	cases := []struct {
		spec    string
		wantErr bool
	}{
		{"openai/gpt-4o-mini", false},
		{"anthropic/claude-sonnet-4-20250514", false},
		{"openai/ft:gpt-4o/custom", false}, // model names may contain slashes
		{"gpt-4o-mini", true},
		{"mistral/small", true},
		{"/gpt-4o", true},
		{"openai/", true},
		{"", true},
	}
	for _, tc := range cases {
		client, err := New(tc.spec, "test-key")
		if tc.wantErr {
			if err == nil {
				t.Errorf("New(%q) succeeded, want error", tc.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q): %v", tc.spec, err)
			continue
		}
		if client == nil {
			t.Errorf("New(%q) returned nil client", tc.spec)
		}
	}
}

func TestNewSelectsProvider(t *testing.T) {
	c, err := New("anthropic/claude-sonnet-4-20250514", "k")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*Anthropic); !ok {
		t.Errorf("got %T, want *Anthropic", c)
	}

	c, err = New("openai/gpt-4o", "k")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*OpenAI); !ok {
		t.Errorf("got %T, want *OpenAI", c)
	}
}
