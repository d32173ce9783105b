// Package cubesim provides a logical 3x3x3 puzzle cube engine for
// interactive simulators.
//
// # Features
//
//   - 27 cubies with exact positions and orientations
//   - Quarter turns of any of the nine layers with grid snapping
//   - A tick-driven animation controller allowing one turn in flight
//   - Seedable shuffles
//   - Sticker projection for renderers
//
// # Quick Start
//
// Drive the simulator from a render loop:
//
//	sim := cubesim.New(cubesim.WithSeed(42))
//	sim.Shuffle(20)
//
//	sim.StartMove(cubesim.R) // false if a turn is already in flight
//
//	for range frames {
//	    if err := sim.Tick(frameDelta); err != nil {
//	        log.Fatal(err) // invariant violation, a bug
//	    }
//	    m, progress, ok := sim.Active()
//	    // render layer m.Layer on m.Axis rotated by sim.Angle()
//	}
//
// # Instant Moves
//
// The engine can be used without animation:
//
//	lattice := cubesim.NewLattice()
//	engine := cubesim.NewEngine(lattice)
//
//	moves, _ := cubesim.ParseMoves("R U R' U'")
//	engine.ApplyAll(moves)
//
//	fmt.Print(cubesim.ProjectFacelets(lattice.Cubies()))
//
// # Conventions
//
// X points right, Y up and Z towards the viewer. A Move with Sign Positive
// turns its layer counter-clockwise when looking down the axis from its
// positive end. Notation follows the usual letters: R L M on X, U D E on Y,
// F B S on Z.
package cubesim
