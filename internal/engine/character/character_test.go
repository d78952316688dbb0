package character

import (
	"testing"

	"github.com/dshills/rewind/internal/engine/saves"
)

func TestNewCharacter(t *testing.T) {
	c := New("Hero")

	if c.Level() != 1 {
		t.Errorf("level = %d, want 1", c.Level())
	}
	if c.Health() != 100 {
		t.Errorf("health = %d, want 100", c.Health())
	}
	if c.Version() != 1 {
		t.Errorf("version = %d, want 1", c.Version())
	}
}

func TestMutatorsBumpVersion(t *testing.T) {
	c := New("Hero")

	c.GainExperience(100)
	c.AddItem("Sword")
	c.LearnSkill("Fireball")
	c.MoveTo(10, 5)
	c.LevelUp()
	c.TakeDamage(30)

	if c.Version() != 7 {
		t.Errorf("version = %d, want 7", c.Version())
	}
	if c.Level() != 2 {
		t.Errorf("level = %d, want 2", c.Level())
	}
	if c.Health() != 70 {
		t.Errorf("health = %d, want 70", c.Health())
	}
	if c.Position() != (Position{X: 10, Y: 5}) {
		t.Errorf("position = %+v", c.Position())
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	c := New("Hero")
	c.TakeDamage(500)
	if c.Health() != 0 {
		t.Errorf("health = %d, want 0", c.Health())
	}
}

func TestLearnSkillDeduplicates(t *testing.T) {
	c := New("Hero")
	before := c.Version()

	c.LearnSkill("Heal")
	c.LearnSkill("Heal")

	if len(c.Skills()) != 1 {
		t.Errorf("skills = %v, want one entry", c.Skills())
	}
	if c.Version() != before+1 {
		t.Errorf("duplicate skill bumped version: %d", c.Version())
	}
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	c := New("Hero")
	c.GainExperience(100)
	c.AddItem("Sword")
	c.LearnSkill("Fireball")

	snap := c.Capture()

	c.LevelUp()
	c.TakeDamage(50)
	c.AddItem("Shield")
	c.MoveTo(99, 99)

	if err := c.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if c.Level() != 1 || c.Health() != 100 || c.Experience() != 100 {
		t.Errorf("state not restored: %s", c.StateInfo())
	}
	if len(c.Inventory()) != 1 || c.Inventory()[0] != "Sword" {
		t.Errorf("inventory = %v, want [Sword]", c.Inventory())
	}
	if c.Position() != (Position{}) {
		t.Errorf("position = %+v, want origin", c.Position())
	}
}

func TestSnapshotDoesNotAliasCharacter(t *testing.T) {
	c := New("Hero")
	c.AddItem("Sword")

	snap := c.Capture().(*Snapshot)

	// Mutating the character after capture must not change the snapshot.
	c.AddItem("Shield")

	if len(snap.inventory) != 1 {
		t.Errorf("snapshot inventory = %v, want [Sword]", snap.inventory)
	}
}

func TestRestoreDoesNotAliasSnapshot(t *testing.T) {
	c := New("Hero")
	c.AddItem("Sword")
	snap := c.Capture().(*Snapshot)

	if err := c.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// Mutating the character after restore must not change the snapshot.
	c.AddItem("Shield")

	if len(snap.inventory) != 1 {
		t.Errorf("snapshot inventory = %v, want [Sword]", snap.inventory)
	}
}

func TestSaveManagerScenario(t *testing.T) {
	// Save three times with versions 1, 2, 3 under max_saves=2: only
	// versions 2 and 3 remain, and slot 0 restores version 2.
	c := New("DragonSlayer")
	mgr := saves.NewSaveManager(2)

	mgr.Save(c) // version 1
	c.GainExperience(100)
	mgr.Save(c) // version 2
	c.GainExperience(100)
	mgr.Save(c) // version 3

	if mgr.Count() != 2 {
		t.Fatalf("count = %d, want 2", mgr.Count())
	}

	if err := mgr.Load(c, 0); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Version() != 2 {
		t.Errorf("version = %d, want 2", c.Version())
	}
	if c.Experience() != 100 {
		t.Errorf("experience = %d, want 100", c.Experience())
	}
}
