// Package character implements a game character subject for the saves
// engine. It exists to exercise the capture/restore contract on a subject
// with container state: inventory and skills are slices that must be
// deep-copied on every capture and restore.
package character

import (
	"fmt"
	"time"

	"github.com/dshills/rewind/internal/engine/saves"
)

// Position is a 2D map position.
type Position struct {
	X, Y int
}

// Character is a mutable game character with a monotonic state version.
type Character struct {
	name       string
	level      int
	health     int
	mana       int
	experience int
	position   Position
	inventory  []string
	skills     []string
	version    uint64
}

// New creates a level-1 character.
func New(name string) *Character {
	return &Character{
		name:    name,
		level:   1,
		health:  100,
		mana:    50,
		version: 1,
	}
}

// Name returns the character's name.
func (c *Character) Name() string { return c.name }

// Level returns the current level.
func (c *Character) Level() int { return c.level }

// Health returns current health.
func (c *Character) Health() int { return c.health }

// Mana returns current mana.
func (c *Character) Mana() int { return c.mana }

// Experience returns accumulated experience points.
func (c *Character) Experience() int { return c.experience }

// Position returns the current map position.
func (c *Character) Position() Position { return c.position }

// Inventory returns a copy of the inventory.
func (c *Character) Inventory() []string {
	return append([]string(nil), c.inventory...)
}

// Skills returns a copy of the learned skills.
func (c *Character) Skills() []string {
	return append([]string(nil), c.skills...)
}

// Version returns the monotonic state version.
func (c *Character) Version() uint64 { return c.version }

// LevelUp raises the level and partially restores health and mana.
func (c *Character) LevelUp() {
	c.level++
	c.health = min(100, c.health+20)
	c.mana = min(100, c.mana+15)
	c.version++
}

// TakeDamage reduces health, floored at zero.
func (c *Character) TakeDamage(damage int) {
	c.health = max(0, c.health-damage)
	c.version++
}

// GainExperience adds experience points.
func (c *Character) GainExperience(exp int) {
	c.experience += exp
	c.version++
}

// MoveTo moves the character to a new position.
func (c *Character) MoveTo(x, y int) {
	c.position = Position{X: x, Y: y}
	c.version++
}

// AddItem adds an item to the inventory.
func (c *Character) AddItem(item string) {
	c.inventory = append(c.inventory, item)
	c.version++
}

// LearnSkill adds a skill if not already known.
func (c *Character) LearnSkill(skill string) {
	for _, s := range c.skills {
		if s == skill {
			return
		}
	}
	c.skills = append(c.skills, skill)
	c.version++
}

// StateInfo returns a one-line summary of the current state.
func (c *Character) StateInfo() string {
	return fmt.Sprintf("%s: level %d, hp %d, mana %d, exp %d, pos (%d,%d), %d items, %d skills (v%d)",
		c.name, c.level, c.health, c.mana, c.experience,
		c.position.X, c.position.Y, len(c.inventory), len(c.skills), c.version)
}

// Snapshot is an immutable capture of a character's state. Inventory and
// skills are copied at construction so the snapshot never aliases the live
// character.
type Snapshot struct {
	name       string
	level      int
	health     int
	mana       int
	experience int
	position   Position
	inventory  []string
	skills     []string
	version    uint64
	createdAt  time.Time
}

// Version returns the character version at capture time.
func (s *Snapshot) Version() uint64 { return s.version }

// CreatedAt returns when the snapshot was taken.
func (s *Snapshot) CreatedAt() time.Time { return s.createdAt }

// Description returns a human-readable summary for slot listings.
func (s *Snapshot) Description() string {
	return fmt.Sprintf("%s level %d, hp %d, exp %d, %d items, %d skills (v%d)",
		s.name, s.level, s.health, s.experience,
		len(s.inventory), len(s.skills), s.version)
}

// Capture returns a snapshot of the character's current state.
func (c *Character) Capture() saves.Snapshot {
	return &Snapshot{
		name:       c.name,
		level:      c.level,
		health:     c.health,
		mana:       c.mana,
		experience: c.experience,
		position:   c.position,
		inventory:  append([]string(nil), c.inventory...),
		skills:     append([]string(nil), c.skills...),
		version:    c.version,
		createdAt:  time.Now(),
	}
}

// Restore overwrites the character's state with the snapshot's values.
// Container fields are copied again so the character never aliases the
// snapshot's storage. Fails with saves.ErrForeignSnapshot when the snapshot
// was not produced by a Character.
func (c *Character) Restore(snap saves.Snapshot) error {
	cs, ok := snap.(*Snapshot)
	if !ok {
		return saves.ErrForeignSnapshot
	}

	c.name = cs.name
	c.level = cs.level
	c.health = cs.health
	c.mana = cs.mana
	c.experience = cs.experience
	c.position = cs.position
	c.inventory = append([]string(nil), cs.inventory...)
	c.skills = append([]string(nil), cs.skills...)
	c.version = cs.version
	return nil
}
