package content

import "testing"

func TestAccessorsReturnCopies(t *testing.T) {
	ps := Projects()
	ps[0].Title = "changed"
	ps[0].Tags[0] = "changed"

	again := Projects()
	if again[0].Title == "changed" || again[0].Tags[0] == "changed" {
		t.Errorf("Expected project content to be immutable")
	}

	sk := Skills()
	sk[0].Items[0] = "changed"
	if Skills()[0].Items[0] == "changed" {
		t.Errorf("Expected skill content to be immutable")
	}
}

func TestProjectAt(t *testing.T) {
	if _, ok := ProjectAt(-1); ok {
		t.Errorf("Expected -1 to be out of range")
	}
	if _, ok := ProjectAt(len(Projects())); ok {
		t.Errorf("Expected len to be out of range")
	}
	p, ok := ProjectAt(1)
	if !ok || p.Title != "The Security Fortress" {
		t.Errorf("Unexpected project %q", p.Title)
	}
}

func TestContentIsComplete(t *testing.T) {
	for i, p := range Projects() {
		if p.Title == "" || p.FullDescription == "" || p.Image == "" || len(p.Features) == 0 || len(p.Technologies) == 0 || len(p.Challenges) == 0 {
			t.Errorf("project %d is missing fields: %+v", i, p)
		}
	}
	if len(Milestones()) != 4 || len(Metrics()) != 4 || len(Achievements()) != 3 || len(Skills()) != 4 {
		t.Errorf("Unexpected section sizes")
	}
	for _, m := range Metrics() {
		if m.Value <= 0 {
			t.Errorf("metric %q has non-positive target %d", m.Label, m.Value)
		}
	}
}
