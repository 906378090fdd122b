package board

// Jump table for the traditional Leela layout: arrows carry the token up,
// snakes carry it down. Board designs vary, so the table is configuration
// data; DefaultConfig keeps the final house free of jump origins so the
// journey can complete.
var defaultJumps = map[int]int{
	// arrows
	10: 23,
	17: 69,
	20: 32,
	22: 60,
	27: 41,
	28: 50,
	37: 66,
	45: 67,
	46: 62,
	54: 68,
	// snakes
	12: 8,
	16: 4,
	24: 7,
	29: 6,
	44: 9,
	52: 35,
	55: 3,
	61: 13,
	63: 2,
}

type Config struct {
	FinalHouse      int
	StartRollValue  int
	StartGraceRolls int
	Jumps           map[int]int
}

func DefaultConfig() Config {
	jumps := make(map[int]int, len(defaultJumps))
	for from, to := range defaultJumps {
		jumps[from] = to
	}
	return Config{
		FinalHouse:      72,
		StartRollValue:  6,
		StartGraceRolls: 6,
		Jumps:           jumps,
	}
}
