package sysproxy

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"", ModeDirect},
		{"http://x/y.pac", ModeAutoConfig},
		{"file://C:/proxy.pac", ModeAutoConfig},
		{"10.0.0.1:3128", ModeFixed},
		{"http=proxy:80;https=proxy:443", ModeFixed},
		{" ", ModeFixed},
	}

	for _, tt := range tests {
		result := Classify(tt.input)
		if result != tt.expected {
			t.Errorf("Classify(%q) = %s, want %s", tt.input, result, tt.expected)
		}
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		input    string
		expected []Option
	}{
		{"", []Option{
			{ID: OptionFlags, Flags: FlagDirect},
			{ID: OptionProxyBypass, Value: "<local>"},
		}},
		{"http://x/y.pac", []Option{
			{ID: OptionFlags, Flags: FlagDirect | FlagAutoProxyURL},
			{ID: OptionAutoConfigURL, Value: "http://x/y.pac"},
			{ID: OptionProxyBypass, Value: "<local>"},
		}},
		{"10.0.0.1:3128", []Option{
			{ID: OptionFlags, Flags: FlagDirect | FlagProxy},
			{ID: OptionProxyServer, Value: "10.0.0.1:3128"},
			{ID: OptionProxyBypass, Value: "<local>"},
		}},
	}

	for _, tt := range tests {
		result := Plan(tt.input)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("Plan(%q) = %+v, want %+v", tt.input, result, tt.expected)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeDirect.String() != "direct" || ModeAutoConfig.String() != "auto-config" || ModeFixed.String() != "fixed" {
		t.Error("unexpected mode names")
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("Mode(42).String() = %q", Mode(42).String())
	}
}
