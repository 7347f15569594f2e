package enums

import "testing"

func TestParseLeadSource(t *testing.T) {
	for _, value := range []string{"website", "facebook_ads", "google_ads", "referral", "events", "other"} {
		source, err := ParseLeadSource(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if !source.IsValid() {
			t.Fatalf("%q should be valid", value)
		}
	}

	if _, err := ParseLeadSource("tiktok_ads"); err == nil {
		t.Fatalf("expected error for unknown source")
	}
	if LeadSource("").IsValid() {
		t.Fatalf("empty source should be invalid")
	}
}

func TestParseLeadStatus(t *testing.T) {
	for _, value := range []string{"new", "contacted", "qualified", "lost", "won"} {
		status, err := ParseLeadStatus(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if !status.IsValid() {
			t.Fatalf("%q should be valid", value)
		}
	}

	if _, err := ParseLeadStatus("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
