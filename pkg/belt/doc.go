// Package belt defines the value types for a single conveyor belt tile.
//
// # Directions
//
// [Direction] is one of the four compass directions, ordered clockwise as
// West → North → East → South → West. The grid's y axis grows toward North,
// so [Direction.Delta] for North is (0, +1).
//
//	d := belt.West
//	d.RotateClockwise()     // North
//	d.RotateAntiClockwise() // South
//	d.Flip()                // East
//
// # Belts and Turns
//
// A [Belt] pairs the side items enter from (Input) with the side they leave
// through (Output). Its [Turn] is derived from the number of clockwise steps
// between the two:
//
//	1 step  → Left
//	2 steps → Forward
//	3 steps → Right
//
// A belt whose Input equals its Output has no Turn; calling [Belt.Turn] on it
// panics. Use [Belt.Valid] to check first when the belt comes from untrusted
// input such as a placement script.
//
// [New] returns the belt a player holds before any placement rule touches it:
// Input West, Output East.
package belt
