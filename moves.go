package cubesim

// Predefined quarter turns.
//
// Example:
//
//	sim.StartMove(cubesim.R)
//	engine.ApplyAll(cubesim.SexyMove)
var (
	// Right layer (x = 1)
	R      = Move{Axis: AxisX, Layer: 1, Sign: Negative}
	RPrime = Move{Axis: AxisX, Layer: 1, Sign: Positive}

	// Left layer (x = -1)
	L      = Move{Axis: AxisX, Layer: -1, Sign: Positive}
	LPrime = Move{Axis: AxisX, Layer: -1, Sign: Negative}

	// Middle slice (x = 0), turns like L
	M      = Move{Axis: AxisX, Layer: 0, Sign: Positive}
	MPrime = Move{Axis: AxisX, Layer: 0, Sign: Negative}

	// Up layer (y = 1)
	U      = Move{Axis: AxisY, Layer: 1, Sign: Negative}
	UPrime = Move{Axis: AxisY, Layer: 1, Sign: Positive}

	// Down layer (y = -1)
	D      = Move{Axis: AxisY, Layer: -1, Sign: Positive}
	DPrime = Move{Axis: AxisY, Layer: -1, Sign: Negative}

	// Equatorial slice (y = 0), turns like D
	E      = Move{Axis: AxisY, Layer: 0, Sign: Positive}
	EPrime = Move{Axis: AxisY, Layer: 0, Sign: Negative}

	// Front layer (z = 1)
	F      = Move{Axis: AxisZ, Layer: 1, Sign: Negative}
	FPrime = Move{Axis: AxisZ, Layer: 1, Sign: Positive}

	// Back layer (z = -1)
	B      = Move{Axis: AxisZ, Layer: -1, Sign: Positive}
	BPrime = Move{Axis: AxisZ, Layer: -1, Sign: Negative}

	// Standing slice (z = 0), turns like F
	S      = Move{Axis: AxisZ, Layer: 0, Sign: Negative}
	SPrime = Move{Axis: AxisZ, Layer: 0, Sign: Positive}
)

// AllMoves lists the 18 distinct quarter turns.
var AllMoves = []Move{
	R, RPrime, L, LPrime, M, MPrime,
	U, UPrime, D, DPrime, E, EPrime,
	F, FPrime, B, BPrime, S, SPrime,
}

// Sexy move: R U R' U'. Six repetitions return to the start.
var SexyMove = []Move{R, U, RPrime, UPrime}

// T-perm algorithm, written with quarter turns only.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R, R, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
