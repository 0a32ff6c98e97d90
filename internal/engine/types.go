package engine

import "fmt"

type Kind string

const (
	KindDaily   Kind = "daily"
	KindMain    Kind = "main"
	KindDungeon Kind = "dungeon"
	KindPenalty Kind = "penalty"
	KindReward  Kind = "reward"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindMain, KindDungeon, KindPenalty, KindReward:
		return true
	default:
		return false
	}
}

// Difficulty is the dungeon rank, E weakest through S strongest.
type Difficulty string

const (
	DifficultyE Difficulty = "E"
	DifficultyD Difficulty = "D"
	DifficultyC Difficulty = "C"
	DifficultyB Difficulty = "B"
	DifficultyA Difficulty = "A"
	DifficultyS Difficulty = "S"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyE, DifficultyD, DifficultyC, DifficultyB, DifficultyA, DifficultyS:
		return true
	default:
		return false
	}
}

var dungeonXP = map[Difficulty]int{
	DifficultyE: 250,
	DifficultyD: 500,
	DifficultyC: 1000,
	DifficultyB: 2500,
	DifficultyA: 5000,
	DifficultyS: 10000,
}

// DungeonXP returns the fixed XP reward for a dungeon rank. Dungeon quests
// always carry this value; any caller-supplied reward is overridden.
func DungeonXP(d Difficulty) (int, error) {
	xp, ok := dungeonXP[d]
	if !ok {
		return 0, fmt.Errorf("invalid dungeon rank: %q", d)
	}
	return xp, nil
}

// Stat identifiers. Quest stats are free-form strings; these are the built-in
// set used by the default quests and the penalty generator.
const (
	StatSTR = "STR"
	StatINT = "INT"
	StatWIS = "WIS"
	StatVIT = "VIT"
	StatCHA = "CHA"
	StatWIL = "WIL"
)

// DefaultStat backs penalty quests whose source quests carry no stats.
const DefaultStat = StatWIL
