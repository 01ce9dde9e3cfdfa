package game

import (
	"testing"

	"github.com/ynckz/devops-simulator/internal/models"
)

func TestGrantExperience(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		exp       int
		grant     int
		wantLevel int
		wantExp   int
		wantUp    bool
	}{
		{"below threshold", 1, 0, 99, 1, 99, false},
		{"exact threshold", 1, 0, 100, 2, 100, true},
		{"crosses threshold", 2, 150, 60, 3, 210, true},
		{"one up per grant even on overshoot", 1, 0, 1000, 2, 1000, true},
		{"surplus counts toward next grant", 2, 1000, 0, 2, 1000, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Player{Level: tc.level, Experience: tc.exp}
			up := grantExperience(p, tc.grant)
			if up != tc.wantUp || p.Level != tc.wantLevel || p.Experience != tc.wantExp {
				t.Fatalf("grantExperience(%d) on lvl=%d exp=%d: got lvl=%d exp=%d up=%v, want lvl=%d exp=%d up=%v",
					tc.grant, tc.level, tc.exp, p.Level, p.Experience, up, tc.wantLevel, tc.wantExp, tc.wantUp)
			}
		})
	}
}

func TestGrantExperienceZeroGrantAboveThreshold(t *testing.T) {
	// A zero grant still applies the single-check rule: experience already
	// past the threshold levels the player once.
	p := &models.Player{Level: 1, Experience: 400}
	if up := grantExperience(p, 0); !up || p.Level != 2 {
		t.Fatalf("got lvl=%d up=%v", p.Level, up)
	}
	if up := grantExperience(p, 0); !up || p.Level != 3 {
		t.Fatalf("second call: got lvl=%d up=%v", p.Level, up)
	}
}
