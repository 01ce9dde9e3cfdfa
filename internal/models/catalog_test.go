package models

import "testing"

func TestIncidentCatalogIntegrity(t *testing.T) {
	if len(Incidents) == 0 {
		t.Fatal("empty incident catalog")
	}

	validSkills := map[string]bool{}
	for _, name := range SkillNames {
		validSkills[name] = true
	}

	seenIDs := map[int]bool{}
	seenDifficulty := map[int]bool{}
	for _, inc := range Incidents {
		if seenIDs[inc.ID] {
			t.Errorf("incident %d: duplicate id", inc.ID)
		}
		seenIDs[inc.ID] = true
		seenDifficulty[inc.Difficulty] = true

		if inc.Difficulty < 1 || inc.Difficulty > 5 {
			t.Errorf("incident %d: difficulty %d out of range", inc.ID, inc.Difficulty)
		}
		if inc.Reward <= 0 {
			t.Errorf("incident %d: non-positive reward", inc.ID)
		}
		if inc.TimeLimit < 0 {
			t.Errorf("incident %d: negative time limit", inc.ID)
		}
		if len(inc.Solutions) == 0 {
			t.Errorf("incident %d: no solutions", inc.ID)
		}
		for key, sol := range inc.Solutions {
			if sol.SuccessRate <= 0 || sol.SuccessRate > 1 {
				t.Errorf("incident %d solution %q: success rate %v", inc.ID, key, sol.SuccessRate)
			}
			if !validSkills[sol.Skill] {
				t.Errorf("incident %d solution %q: unknown skill %q", inc.ID, key, sol.Skill)
			}
		}
	}

	// Every difficulty tier has at least one incident, so any level band
	// that intersects [1,5] can produce work.
	for d := 1; d <= 5; d++ {
		if !seenDifficulty[d] {
			t.Errorf("no incident at difficulty %d", d)
		}
	}
}

func TestCrisisCatalogIntegrity(t *testing.T) {
	if len(Crises) == 0 {
		t.Fatal("empty crisis catalog")
	}
	seenIDs := map[int]bool{}
	for _, c := range Crises {
		if seenIDs[c.ID] {
			t.Errorf("crisis %d: duplicate id", c.ID)
		}
		seenIDs[c.ID] = true
		if c.Severity < 1 || c.Severity > 5 {
			t.Errorf("crisis %d: severity %d out of range", c.ID, c.Severity)
		}
		if c.ServerDamage <= 0 || c.MoneyLoss <= 0 || c.ReputationLoss <= 0 {
			t.Errorf("crisis %d: non-positive losses: %+v", c.ID, c)
		}
	}
}

func TestIncidentByID(t *testing.T) {
	if inc := IncidentByID(3); inc == nil || inc.Name != "DDoS Attack" {
		t.Fatalf("IncidentByID(3) = %+v", inc)
	}
	if inc := IncidentByID(999); inc != nil {
		t.Fatalf("IncidentByID(999) = %+v, want nil", inc)
	}
}

func TestIncidentsInBand(t *testing.T) {
	band := IncidentsInBand(2, 4)
	if len(band) != 3 {
		t.Fatalf("band [2,4] has %d incidents, want 3", len(band))
	}
	for _, inc := range band {
		if inc.Difficulty < 2 || inc.Difficulty > 4 {
			t.Errorf("incident %d outside band: difficulty %d", inc.ID, inc.Difficulty)
		}
	}
	if band := IncidentsInBand(6, 7); band != nil {
		t.Fatalf("band above catalog: %v", band)
	}
}

func TestStarterSkills(t *testing.T) {
	skills := StarterSkills(7)
	if len(skills) != len(SkillNames) {
		t.Fatalf("got %d starter skills, want %d", len(skills), len(SkillNames))
	}
	for _, sk := range skills {
		if sk.PlayerID != 7 || sk.Level != 1 {
			t.Errorf("starter skill: %+v", sk)
		}
	}
}
