package engine

import "fmt"

// XPPerLevel is the flat leveling denominator: every 100 XP yields one
// level, starting at level 1 for 0-99 XP. No per-level curve.
const XPPerLevel = 100

// difficultyXP maps each tier to its fixed reward. The value is frozen into
// the mission at creation time.
var difficultyXP = map[Difficulty]int{
	DifficultyEasy:    10,
	DifficultyNormal:  30,
	DifficultyHard:    50,
	DifficultyExtreme: 100,
}

// XPForDifficulty returns the reward fixed at mission creation for a tier.
func XPForDifficulty(d Difficulty) (int, error) {
	xp, ok := difficultyXP[d]
	if !ok {
		return 0, fmt.Errorf("invalid difficulty: %q", d)
	}
	return xp, nil
}

// LevelForXP returns the level derived from cumulative XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPForLevel returns the XP threshold at which the given level starts.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// XPToNextLevel returns how much XP is missing until the next level.
func XPToNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	next := XPForLevel(LevelForXP(xp) + 1)
	return next - xp
}
