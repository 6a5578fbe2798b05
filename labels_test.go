package newsroom

import "testing"

func TestParseLabelsTagifyInput(t *testing.T) {
	got := ParseLabels(`[{"value":"Anime"},{"value":"Manga"}]`)
	if len(got) != 2 || got[0] != "Anime" || got[1] != "Manga" {
		t.Errorf("ParseLabels = %v, want [Anime Manga]", got)
	}
}

func TestParseLabelsBareScalar(t *testing.T) {
	got := ParseLabels("Anime")
	if len(got) != 1 || got[0] != "Anime" {
		t.Errorf("ParseLabels = %v, want [Anime]", got)
	}
}

func TestParseLabelsMalformedFailsClosed(t *testing.T) {
	cases := []string{
		`[{"value":`,
		`[1, 2, 3`,
		`[{"name":"wrong field"}]`,
	}
	for _, in := range cases {
		got := ParseLabels(in)
		if in == `[{"name":"wrong field"}]` {
			// Valid JSON, but no value fields: still ends up empty.
			if len(got) != 0 {
				t.Errorf("ParseLabels(%q) = %v, want empty", in, got)
			}
			continue
		}
		if got != nil {
			t.Errorf("ParseLabels(%q) = %v, want nil on malformed input", in, got)
		}
	}
}

func TestParseLabelsEmpty(t *testing.T) {
	if got := ParseLabels(""); got != nil {
		t.Errorf("ParseLabels(\"\") = %v, want nil", got)
	}
	if got := ParseLabels("   "); got != nil {
		t.Errorf("ParseLabels(blank) = %v, want nil", got)
	}
}

func TestParseLabelsSkipsEmptyValues(t *testing.T) {
	got := ParseLabels(`[{"value":"Anime"},{"value":"  "}]`)
	if len(got) != 1 || got[0] != "Anime" {
		t.Errorf("ParseLabels = %v, want [Anime]", got)
	}
}
